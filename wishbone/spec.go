// Package wishbone models the Wishbone B4 bus at the signal level.
//
// The package provides the static bus parameters, the master-driven and
// slave-driven signal bundles, the shared signal record that master and
// slave components sample, and the upstream transaction protocol that a
// requester uses to talk to a bus master.
package wishbone

import "fmt"

// A Spec carries the static parameters of a bus segment. A Spec is immutable
// for the lifetime of the components built with it.
type Spec struct {
	// AddrWidth is the width of the address lines, in bits. Must be within
	// 1-64.
	AddrWidth uint

	// DataWidth is the width of the data lines, in bits. Must be within 1-64
	// and divisible into byte lanes.
	DataWidth uint

	// WaitState tells if the master inserts wait states between cycles. Only
	// false is supported.
	WaitState bool
}

// Validate checks that the spec describes a bus that this package can model.
func (s Spec) Validate() error {
	if s.AddrWidth == 0 || s.AddrWidth > 64 {
		return fmt.Errorf(
			"address width must be within 1-64, got %d", s.AddrWidth)
	}

	if s.DataWidth == 0 || s.DataWidth > 64 {
		return fmt.Errorf(
			"data width must be within 1-64, got %d", s.DataWidth)
	}

	if s.DataWidth%8 != 0 {
		return fmt.Errorf(
			"data width must be a whole number of byte lanes, got %d",
			s.DataWidth)
	}

	if s.WaitState {
		return fmt.Errorf("wait-state mode is not implemented")
	}

	return nil
}

// MustValidate panics if the spec is not valid.
func (s Spec) MustValidate() {
	if err := s.Validate(); err != nil {
		panic(err)
	}
}

// AddrMask returns the mask that keeps the valid address bits.
func (s Spec) AddrMask() uint64 {
	return widthMask(s.AddrWidth)
}

// DataMask returns the mask that keeps the valid data bits.
func (s Spec) DataMask() uint64 {
	return widthMask(s.DataWidth)
}

// SelMask returns the mask that keeps the valid byte-lane select bits, one
// bit per byte lane.
func (s Spec) SelMask() uint64 {
	return widthMask(s.DataWidth / 8)
}

// NumByteLanes returns the number of byte lanes on the data lines.
func (s Spec) NumByteLanes() uint {
	return s.DataWidth / 8
}

func widthMask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

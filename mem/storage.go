// Package mem provides the storage that backs memory-like bus slaves.
package mem

import (
	"errors"
	"sync"
)

// Memory capacity units.
const (
	KB uint64 = 1 << 10
	MB uint64 = 1 << 20
	GB uint64 = 1 << 30
)

// A Storage keeps the data of a simulated memory.
//
// The storage manages its bytes in fixed-size units, similar to pages. Units
// that are never touched by Read or Write are never allocated.
type Storage struct {
	sync.Mutex
	unitSize uint64
	capacity uint64
	data     map[uint64][]byte
}

// NewStorage creates a storage object with the given capacity in bytes.
func NewStorage(capacity uint64) *Storage {
	s := new(Storage)

	s.unitSize = 4 * KB
	s.capacity = capacity
	s.data = make(map[uint64][]byte)

	return s
}

// Capacity returns the capacity of the storage in bytes.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) unit(address uint64) ([]byte, error) {
	if address >= s.capacity {
		return nil, errors.New("accessing address beyond storage capacity")
	}

	baseAddr := address - address%s.unitSize
	unit, ok := s.data[baseAddr]
	if !ok {
		unit = make([]byte, s.unitSize)
		s.data[baseAddr] = unit
	}

	return unit, nil
}

// Read returns a copy of the bytes in [address, address+n).
func (s *Storage) Read(address, n uint64) ([]byte, error) {
	s.Lock()
	defer s.Unlock()

	res := make([]byte, n)
	currAddr := address
	offset := uint64(0)

	for offset < n {
		unit, err := s.unit(currAddr)
		if err != nil {
			return nil, err
		}

		inUnitAddr := currAddr % s.unitSize
		chunk := s.unitSize - inUnitAddr
		if left := n - offset; left < chunk {
			chunk = left
		}

		copy(res[offset:offset+chunk], unit[inUnitAddr:inUnitAddr+chunk])
		offset += chunk
		currAddr += chunk
	}

	return res, nil
}

// Write stores the given bytes starting at the given address.
func (s *Storage) Write(address uint64, data []byte) error {
	s.Lock()
	defer s.Unlock()

	currAddr := address
	offset := uint64(0)

	for offset < uint64(len(data)) {
		unit, err := s.unit(currAddr)
		if err != nil {
			return err
		}

		inUnitAddr := currAddr % s.unitSize
		chunk := s.unitSize - inUnitAddr
		if left := uint64(len(data)) - offset; left < chunk {
			chunk = left
		}

		copy(unit[inUnitAddr:inUnitAddr+chunk], data[offset:offset+chunk])
		offset += chunk
		currAddr += chunk
	}

	return nil
}

package wishbone

import (
	"github.com/buslab/wishbone/sim"
)

// HookPosMasterDrive marks when the master-driven signals change.
var HookPosMasterDrive = &sim.HookPos{Name: "Bus Master Drive"}

// HookPosSlaveDrive marks when the slave-driven signals change.
var HookPosSlaveDrive = &sim.HookPos{Name: "Bus Slave Drive"}

// HookPosReset marks when the reset line changes.
var HookPosReset = &sim.HookPos{Name: "Bus Reset"}

// A Wakeable is a component that can be asked to tick again. Both sides of a
// bus are woken when the signals they sample change.
type Wakeable interface {
	TickLater()
}

// A Bus is the signal record shared by the master and the slave side of one
// Wishbone segment. It carries the two signal bundles, the reset line, and
// the fabric-ready line that gates cycle starts on the master side.
//
// Drives are change-detected: re-driving the value already on the wires is a
// no-op and wakes nobody. This keeps quiescent components quiescent.
type Bus struct {
	sim.HookableBase

	name string

	master      MasterSignals
	slave       SlaveSignals
	reset       bool
	masterReady bool

	masterSide []Wakeable
	slaveSide  []Wakeable
}

// NewBus creates a bus with all signals negated and the fabric-ready line
// asserted.
func NewBus(name string) *Bus {
	return &Bus{
		name:        name,
		masterReady: true,
	}
}

// Name returns the name of the bus.
func (b *Bus) Name() string {
	return b.name
}

// AttachMasterSide registers a component to be woken when the signals the
// master side samples (slave bundle, reset, fabric ready) change.
func (b *Bus) AttachMasterSide(w Wakeable) {
	b.masterSide = append(b.masterSide, w)
}

// AttachSlaveSide registers a component to be woken when the signals the
// slave side samples (master bundle, reset) change.
func (b *Bus) AttachSlaveSide(w Wakeable) {
	b.slaveSide = append(b.slaveSide, w)
}

// DriveMaster updates the master-driven bundle.
func (b *Bus) DriveMaster(s MasterSignals) {
	if s == b.master {
		return
	}

	b.master = s

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosMasterDrive,
		Item:   s,
	})

	wake(b.slaveSide)
}

// Master samples the master-driven bundle.
func (b *Bus) Master() MasterSignals {
	return b.master
}

// DriveSlave updates the slave-driven bundle.
func (b *Bus) DriveSlave(s SlaveSignals) {
	if s == b.slave {
		return
	}

	b.slave = s

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosSlaveDrive,
		Item:   s,
	})

	wake(b.masterSide)
}

// Slave samples the slave-driven bundle.
func (b *Bus) Slave() SlaveSignals {
	return b.slave
}

// AssertReset asserts the reset line.
func (b *Bus) AssertReset() {
	b.setReset(true)
}

// DeassertReset negates the reset line.
func (b *Bus) DeassertReset() {
	b.setReset(false)
}

// ResetAsserted tells if the reset line is asserted.
func (b *Bus) ResetAsserted() bool {
	return b.reset
}

// SetMasterReady drives the fabric-ready line that tells the master the
// fabric can start a cycle.
func (b *Bus) SetMasterReady(ready bool) {
	if b.masterReady == ready {
		return
	}

	b.masterReady = ready
	wake(b.masterSide)
}

// MasterReady samples the fabric-ready line.
func (b *Bus) MasterReady() bool {
	return b.masterReady
}

func (b *Bus) setReset(v bool) {
	if b.reset == v {
		return
	}

	b.reset = v

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosReset,
		Item:   v,
	})

	wake(b.masterSide)
	wake(b.slaveSide)
}

func wake(ws []Wakeable) {
	for _, w := range ws {
		w.TickLater()
	}
}

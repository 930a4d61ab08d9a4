// Package memslave provides a memory-backed Wishbone slave.
//
// The slave samples the master bundle, waits a configurable number of
// cycles, and terminates the cycle with ack for exactly one tick, reading
// from or writing to its storage. It is always correct and always responds;
// it exists to exercise bus masters in integration tests and demos.
package memslave

import (
	"encoding/binary"
	"log"

	"github.com/buslab/wishbone/mem"
	"github.com/buslab/wishbone/sim"
	"github.com/buslab/wishbone/wishbone"
)

// Comp is a memory-backed Wishbone slave.
type Comp struct {
	*sim.TickingComponent

	bus     *wishbone.Bus
	spec    wishbone.Spec
	Storage *mem.Storage

	// AckLatency is the number of extra cycles the slave waits between
	// observing stb and terminating the cycle.
	AckLatency int

	counting   bool
	cyclesLeft int
	acking     bool
}

// Tick runs one clock edge of the slave.
func (c *Comp) Tick() bool {
	if c.bus.ResetAsserted() {
		return c.applyReset()
	}

	m := c.bus.Master()

	if c.acking {
		// The master negates stb on the tick it samples ack, so the ack
		// pulse closes after one tick.
		c.bus.DriveSlave(wishbone.NewSlaveSignals())
		c.acking = false
		return true
	}

	if !m.Stb || !m.Cyc {
		if c.counting {
			c.counting = false
			return true
		}
		return false
	}

	if !c.counting {
		c.counting = true
		c.cyclesLeft = c.AckLatency
		return true
	}

	if c.cyclesLeft > 0 {
		c.cyclesLeft--
		return true
	}

	c.terminateCycle(m)

	return true
}

func (c *Comp) applyReset() bool {
	out := wishbone.NewSlaveSignals()
	out.Reset()
	c.bus.DriveSlave(out)

	changed := c.counting || c.acking
	c.counting = false
	c.acking = false

	return changed
}

func (c *Comp) terminateCycle(m wishbone.MasterSignals) {
	out := wishbone.SlaveSignals{Ack: true}

	if m.We {
		c.commitWrite(m)
	} else {
		out.Dat = c.readWord(m)
	}

	c.bus.DriveSlave(out)
	c.counting = false
	c.acking = true
}

func (c *Comp) readWord(m wishbone.MasterSignals) uint64 {
	data, err := c.Storage.Read(m.Adr, uint64(c.spec.NumByteLanes()))
	if err != nil {
		log.Panic(err)
	}

	buf := make([]byte, 8)
	copy(buf, data)

	return binary.LittleEndian.Uint64(buf) & c.spec.DataMask()
}

// commitWrite stores the data word, touching only the byte lanes selected
// by sel.
func (c *Comp) commitWrite(m wishbone.MasterSignals) {
	nLanes := c.spec.NumByteLanes()

	word := make([]byte, 8)
	binary.LittleEndian.PutUint64(word, m.Dat)

	data, err := c.Storage.Read(m.Adr, uint64(nLanes))
	if err != nil {
		log.Panic(err)
	}

	for i := uint(0); i < nLanes; i++ {
		if m.Sel&(1<<i) != 0 {
			data[i] = word[i]
		}
	}

	err = c.Storage.Write(m.Adr, data)
	if err != nil {
		log.Panic(err)
	}
}

package memslave

import (
	"github.com/buslab/wishbone/mem"
	"github.com/buslab/wishbone/sim"
	"github.com/buslab/wishbone/wishbone"
)

// Builder can build memory slaves.
type Builder struct {
	engine     sim.Engine
	freq       sim.Freq
	spec       wishbone.Spec
	bus        *wishbone.Bus
	ackLatency int
	capacity   uint64
	storage    *mem.Storage
}

// MakeBuilder returns a new Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:     1 * sim.GHz,
		capacity: 4 * mem.MB,
		spec: wishbone.Spec{
			AddrWidth: 32,
			DataWidth: 32,
		},
	}
}

// WithEngine sets the engine that drives the slave.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency of the slave.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithSpec sets the bus parameters of the slave.
func (b Builder) WithSpec(spec wishbone.Spec) Builder {
	b.spec = spec
	return b
}

// WithBus sets the bus segment the slave listens on.
func (b Builder) WithBus(bus *wishbone.Bus) Builder {
	b.bus = bus
	return b
}

// WithAckLatency sets the number of extra cycles the slave waits before
// terminating a cycle.
func (b Builder) WithAckLatency(n int) Builder {
	b.ackLatency = n
	return b
}

// WithNewStorage lets the slave create a new storage with the given capacity
// in bytes.
func (b Builder) WithNewStorage(capacity uint64) Builder {
	b.capacity = capacity
	b.storage = nil
	return b
}

// WithStorage lets the slave use an existing storage, for example one that is
// pre-filled with a memory image.
func (b Builder) WithStorage(storage *mem.Storage) Builder {
	b.storage = storage
	return b
}

// Build creates a new memory slave. It panics if the spec is invalid or if
// no bus is given.
func (b Builder) Build(name string) *Comp {
	b.spec.MustValidate()

	if b.bus == nil {
		panic("memslave requires a bus")
	}

	c := &Comp{
		bus:        b.bus,
		spec:       b.spec,
		AckLatency: b.ackLatency,
		Storage:    b.storage,
	}
	c.TickingComponent = sim.NewSecondaryTickingComponent(
		name, b.engine, b.freq, c)

	if c.Storage == nil {
		c.Storage = mem.NewStorage(b.capacity)
	}

	b.bus.AttachSlaveSide(c)

	return c
}

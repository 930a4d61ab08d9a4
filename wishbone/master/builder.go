package master

import (
	"github.com/buslab/wishbone/sim"
	"github.com/buslab/wishbone/wishbone"
)

// Builder can build bus masters.
type Builder struct {
	engine     sim.Engine
	freq       sim.Freq
	spec       wishbone.Spec
	bus        *wishbone.Bus
	topBufSize int
}

// MakeBuilder returns a new Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:       1 * sim.GHz,
		topBufSize: 16,
		spec: wishbone.Spec{
			AddrWidth: 32,
			DataWidth: 32,
		},
	}
}

// WithEngine sets the engine that drives the master.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency of the master.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithSpec sets the bus parameters of the master.
func (b Builder) WithSpec(spec wishbone.Spec) Builder {
	b.spec = spec
	return b
}

// WithBus sets the bus segment the master drives.
func (b Builder) WithBus(bus *wishbone.Bus) Builder {
	b.bus = bus
	return b
}

// WithTopBufSize sets the size of the request buffer of the top port.
func (b Builder) WithTopBufSize(size int) Builder {
	b.topBufSize = size
	return b
}

// Build creates a new master. It panics if the spec is invalid or if no bus
// is given.
func (b Builder) Build(name string) *Comp {
	b.spec.MustValidate()

	if b.bus == nil {
		panic("master requires a bus")
	}

	c := &Comp{
		bus:  b.bus,
		spec: b.spec,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.regs = regs{admission: true}

	c.topPort = sim.NewPort(c, b.topBufSize, b.topBufSize, name+".Top")
	c.AddPort("Top", c.topPort)

	b.bus.AttachMasterSide(c)

	return c
}

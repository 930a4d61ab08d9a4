// Package master provides a Wishbone bus master that runs single READ and
// WRITE cycles on behalf of an upstream requester.
package master

import (
	"log"
	"reflect"

	"github.com/buslab/wishbone/sim"
	"github.com/buslab/wishbone/tracing"
	"github.com/buslab/wishbone/wishbone"
)

type cycleKind int

const (
	cycleNone cycleKind = iota
	cycleRead
	cycleWrite
)

type respPhase int

const (
	respIdle respPhase = iota
	respLatchData
)

// regs is the register set of the engine. A tick reads a wholesale copy of
// the previous tick's registers and commits the next values with a single
// assignment, so no step can observe a half-updated register set.
type regs struct {
	cycle     cycleKind
	resp      respPhase
	admission bool
	latched   uint64
	req       *wishbone.TransReq
}

// Comp translates upstream transaction requests into single Wishbone
// READ/WRITE cycles and turns slave acknowledgements into one-tick response
// pulses.
//
// At most one request is in flight at a time. While a cycle is pending the
// admission register stays low and further requests wait in the top port
// buffer. A slave that never acknowledges leaves the engine pending forever;
// detecting that is the integrator's concern, not this component's.
type Comp struct {
	*sim.TickingComponent

	topPort sim.Port
	bus     *wishbone.Bus
	spec    wishbone.Spec

	regs regs
}

// TopPort returns the port that accepts transaction requests.
func (c *Comp) TopPort() sim.Port {
	return c.topPort
}

// Admitting tells if the engine can accept a new request this tick.
func (c *Comp) Admitting() bool {
	return c.regs.admission
}

// Tick runs one clock edge of the engine.
func (c *Comp) Tick() bool {
	if c.bus.ResetAsserted() {
		return c.applyReset()
	}

	cur := c.regs
	next := cur

	in := c.bus.Slave()

	madeProgress := false
	madeProgress = c.presentResponse(cur, &next) || madeProgress
	madeProgress = c.captureTermination(cur, &next, in) || madeProgress
	madeProgress = c.acceptRequest(cur, &next) || madeProgress

	c.regs = next

	// The master bundle is combinational on the committed state. The pending
	// flag clears on the very tick ack is sampled, so stb/cyc negate on that
	// same tick.
	c.bus.DriveMaster(c.driveSignals(next))

	return madeProgress
}

// applyReset forces every master-driven signal low and clears all registers.
// Reset has priority over all other logic for the tick.
func (c *Comp) applyReset() bool {
	out := wishbone.NewMasterSignals()
	out.Reset()
	c.bus.DriveMaster(out)

	cleared := regs{admission: true}
	changed := c.regs != cleared
	c.regs = cleared

	return changed
}

// presentResponse delivers the one-tick response pulse. The latch-data phase
// closes unconditionally on the next tick, so the response is valid for
// exactly one tick per completed cycle.
func (c *Comp) presentResponse(cur regs, next *regs) bool {
	if cur.resp != respLatchData {
		return false
	}

	rsp := wishbone.TransRspBuilder{}.
		WithSrc(c.topPort.AsRemote()).
		WithDst(cur.req.Src).
		WithRspTo(cur.req.ID).
		WithData(cur.latched).
		Build()

	err := c.topPort.Send(rsp)
	if err != nil {
		// The upstream consumer is always ready by contract.
		log.Panicf("response consumer backpressured master %s", c.Name())
	}

	tracing.TraceReqComplete(cur.req, c)

	next.resp = respIdle
	next.req = nil

	return true
}

// captureTermination samples the slave bundle. Ack is the only termination
// condition: it latches the slave data, retires the pending cycle, opens the
// response window, and restores admission.
func (c *Comp) captureTermination(
	cur regs,
	next *regs,
	in wishbone.SlaveSignals,
) bool {
	if cur.cycle == cycleNone || !in.Ack {
		return false
	}

	next.latched = in.Dat & c.spec.DataMask()
	next.cycle = cycleNone
	next.resp = respLatchData
	next.admission = true

	return true
}

// acceptRequest admits at most one request per tick. Admission requires the
// admission register high at tick start and the fabric-ready line asserted.
func (c *Comp) acceptRequest(cur regs, next *regs) bool {
	if !cur.admission || cur.cycle != cycleNone {
		return false
	}

	if !c.bus.MasterReady() {
		return false
	}

	msg := c.topPort.PeekIncoming()
	if msg == nil {
		return false
	}

	switch req := msg.(type) {
	case *wishbone.TransReq:
		c.topPort.RetrieveIncoming()
		tracing.TraceReqReceive(req, c)

		if req.IsWrite {
			next.cycle = cycleWrite
		} else {
			next.cycle = cycleRead
		}
		next.req = req
		next.admission = false

		return true
	default:
		log.Panicf("cannot handle request of type %s", reflect.TypeOf(msg))
	}

	return false
}

// driveSignals derives the master bundle from a register set. Stb and Cyc
// are driven from the same pending flag and can never diverge.
func (c *Comp) driveSignals(r regs) wishbone.MasterSignals {
	out := wishbone.NewMasterSignals()

	switch r.cycle {
	case cycleNone:
		// Idle: every master-driven signal stays negated.
	case cycleRead:
		out.Adr = r.req.Addr & c.spec.AddrMask()
		out.Sel = r.req.ByteEnable & c.spec.SelMask()
		out.We = false
		out.Stb = true
		out.Cyc = true
	case cycleWrite:
		out.Adr = r.req.Addr & c.spec.AddrMask()
		out.Dat = r.req.Data & c.spec.DataMask()
		out.Sel = r.req.ByteEnable & c.spec.SelMask()
		out.We = true
		out.Stb = true
		out.Cyc = true
	}

	return out
}

package tracing

import (
	"fmt"

	"github.com/buslab/wishbone/sim"
	"github.com/buslab/wishbone/wishbone"
)

// A busHook observes the drives on a bus segment and records every signal
// transition as a zero-length task on a tracer.
type busHook struct {
	timeTeller sim.TimeTeller
	tracer     Tracer
	busName    string
	count      uint64
}

// CollectBusSignals attaches a hook to the bus so that every master-side and
// slave-side signal transition is recorded by the tracer.
func CollectBusSignals(
	bus *wishbone.Bus,
	timeTeller sim.TimeTeller,
	tracer Tracer,
) {
	h := &busHook{
		timeTeller: timeTeller,
		tracer:     tracer,
		busName:    bus.Name(),
	}
	bus.AcceptHook(h)
}

// Func records the driven bundle.
func (h *busHook) Func(ctx sim.HookCtx) {
	var kind, what string

	switch ctx.Pos {
	case wishbone.HookPosMasterDrive:
		s := ctx.Item.(wishbone.MasterSignals)
		kind = "master_drive"
		what = fmt.Sprintf("adr=%#x dat=%#x sel=%#x we=%t stb=%t cyc=%t",
			s.Adr, s.Dat, s.Sel, s.We, s.Stb, s.Cyc)
	case wishbone.HookPosSlaveDrive:
		s := ctx.Item.(wishbone.SlaveSignals)
		kind = "slave_drive"
		what = fmt.Sprintf("dat=%#x ack=%t", s.Dat, s.Ack)
	case wishbone.HookPosReset:
		kind = "reset"
		what = fmt.Sprintf("asserted=%t", ctx.Item.(bool))
	default:
		return
	}

	h.count++
	task := Task{
		ID:    fmt.Sprintf("%s.signal.%d", h.busName, h.count),
		Kind:  kind,
		What:  what,
		Where: h.busName,
	}

	h.tracer.StartTask(task)
	h.tracer.EndTask(task)
}

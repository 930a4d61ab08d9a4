package main

import (
	"log"
	"math/rand"
	"reflect"

	"github.com/buslab/wishbone/sim"
	"github.com/buslab/wishbone/wishbone"
)

// accessRegionWords is the number of word-aligned addresses the agent
// exercises. Keeping the region small makes read-after-write common.
const accessRegionWords = 64

type pendingAccess struct {
	addr     uint64
	isWrite  bool
	expected uint64
}

// A trafficAgent issues a stream of random READ and WRITE requests to a bus
// master and checks every read response against a software model of the
// memory.
type trafficAgent struct {
	*sim.TickingComponent

	port       sim.Port
	masterPort sim.RemotePort
	spec       wishbone.Spec

	rand     *rand.Rand
	numTrans int

	model   map[uint64]uint64
	pending map[string]pendingAccess

	sent       int
	received   int
	mismatches int
}

func newTrafficAgent(
	name string,
	engine sim.Engine,
	freq sim.Freq,
	spec wishbone.Spec,
	masterPort sim.RemotePort,
	numTrans int,
	seed int64,
) *trafficAgent {
	a := &trafficAgent{
		masterPort: masterPort,
		spec:       spec,
		rand:       rand.New(rand.NewSource(seed)),
		numTrans:   numTrans,
		model:      make(map[uint64]uint64),
		pending:    make(map[string]pendingAccess),
	}
	a.TickingComponent = sim.NewTickingComponent(name, engine, freq, a)

	a.port = sim.NewPort(a, 4, 4, name+".Port")
	a.AddPort("Port", a.port)

	return a
}

// Tick collects available responses and issues at most one new request.
func (a *trafficAgent) Tick() bool {
	madeProgress := a.collectResponses()
	madeProgress = a.issueRequest() || madeProgress

	return madeProgress
}

func (a *trafficAgent) collectResponses() bool {
	madeProgress := false

	for {
		msg := a.port.PeekIncoming()
		if msg == nil {
			return madeProgress
		}

		rsp, ok := msg.(*wishbone.TransRsp)
		if !ok {
			log.Panicf("cannot handle message of type %s",
				reflect.TypeOf(msg))
		}

		a.port.RetrieveIncoming()
		a.checkResponse(rsp)

		madeProgress = true
	}
}

func (a *trafficAgent) checkResponse(rsp *wishbone.TransRsp) {
	access, ok := a.pending[rsp.GetRspTo()]
	if !ok {
		log.Panicf("response %s answers no pending request", rsp.Meta().ID)
	}
	delete(a.pending, rsp.GetRspTo())

	a.received++

	if access.isWrite {
		return
	}

	if rsp.Data != access.expected {
		a.mismatches++
		log.Printf("read @%#x returned %#x, want %#x",
			access.addr, rsp.Data, access.expected)
	}
}

func (a *trafficAgent) issueRequest() bool {
	if a.sent >= a.numTrans {
		return false
	}

	addr := uint64(a.rand.Intn(accessRegionWords)) *
		uint64(a.spec.NumByteLanes())
	isWrite := a.rand.Intn(2) == 0
	data := a.rand.Uint64() & a.spec.DataMask()

	builder := wishbone.TransReqBuilder{}.
		WithSrc(a.port.AsRemote()).
		WithDst(a.masterPort).
		WithAddr(addr).
		WithByteEnable(a.spec.SelMask())
	if isWrite {
		builder = builder.WithData(data).AsWrite()
	}
	req := builder.Build()

	err := a.port.Send(req)
	if err != nil {
		return false
	}

	access := pendingAccess{addr: addr, isWrite: isWrite}
	if isWrite {
		a.model[addr] = data
	} else {
		access.expected = a.model[addr]
	}
	a.pending[req.ID] = access

	a.sent++

	return true
}

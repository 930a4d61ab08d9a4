package master

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/buslab/wishbone/sim"
	"github.com/buslab/wishbone/wishbone"
)

var _ = Describe("Master", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		topPort  *MockPort
		bus      *wishbone.Bus
		m        *Comp
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())

		engine = NewMockEngine(mockCtrl)
		engine.EXPECT().CurrentTime().
			Return(sim.VTimeInSec(0)).AnyTimes()
		engine.EXPECT().Schedule(gomock.Any()).AnyTimes()

		topPort = NewMockPort(mockCtrl)
		topPort.EXPECT().AsRemote().
			Return(sim.RemotePort("Master.Top")).AnyTimes()

		bus = wishbone.NewBus("Bus")
		m = MakeBuilder().
			WithEngine(engine).
			WithSpec(wishbone.Spec{AddrWidth: 32, DataWidth: 32}).
			WithBus(bus).
			Build("Master")
		m.topPort = topPort
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	newReadReq := func(addr uint64) *wishbone.TransReq {
		return wishbone.TransReqBuilder{}.
			WithSrc("Requester").
			WithDst(topPort.AsRemote()).
			WithAddr(addr).
			WithByteEnable(0xf).
			Build()
	}

	newWriteReq := func(addr, data, sel uint64) *wishbone.TransReq {
		return wishbone.TransReqBuilder{}.
			WithSrc("Requester").
			WithDst(topPort.AsRemote()).
			WithAddr(addr).
			WithData(data).
			AsWrite().
			WithByteEnable(sel).
			Build()
	}

	startCycle := func(req *wishbone.TransReq) {
		topPort.EXPECT().PeekIncoming().Return(req)
		topPort.EXPECT().RetrieveIncoming().Return(req)

		madeProgress := m.Tick()

		Expect(madeProgress).To(BeTrue())
	}

	It("should be idle with no request", func() {
		topPort.EXPECT().PeekIncoming().Return(nil)

		madeProgress := m.Tick()

		Expect(madeProgress).To(BeFalse())
		Expect(bus.Master()).To(Equal(wishbone.MasterSignals{}))
		Expect(m.Admitting()).To(BeTrue())
	})

	It("should start a read cycle when admitting a request", func() {
		startCycle(newReadReq(0x40))

		out := bus.Master()
		Expect(out.Stb).To(BeTrue())
		Expect(out.Cyc).To(BeTrue())
		Expect(out.We).To(BeFalse())
		Expect(out.Adr).To(Equal(uint64(0x40)))
		Expect(out.Sel).To(Equal(uint64(0xf)))
		Expect(m.Admitting()).To(BeFalse())
	})

	It("should start a write cycle when admitting a write request", func() {
		startCycle(newWriteReq(0x80, 0xcafebabe, 0x3))

		out := bus.Master()
		Expect(out.Stb).To(BeTrue())
		Expect(out.Cyc).To(BeTrue())
		Expect(out.We).To(BeTrue())
		Expect(out.Adr).To(Equal(uint64(0x80)))
		Expect(out.Dat).To(Equal(uint64(0xcafebabe)))
		Expect(out.Sel).To(Equal(uint64(0x3)))
	})

	It("should drive stb and cyc to the same value in every state", func() {
		out := bus.Master()
		Expect(out.Stb).To(Equal(out.Cyc))

		startCycle(newReadReq(0x40))
		out = bus.Master()
		Expect(out.Stb).To(Equal(out.Cyc))

		bus.DriveSlave(wishbone.SlaveSignals{Dat: 0x1, Ack: true})
		m.Tick()
		out = bus.Master()
		Expect(out.Stb).To(Equal(out.Cyc))
	})

	It("should hold the cycle while the slave does not respond", func() {
		startCycle(newReadReq(0x40))

		for i := 0; i < 3; i++ {
			madeProgress := m.Tick()

			Expect(madeProgress).To(BeFalse())
			Expect(bus.Master().Stb).To(BeTrue())
			Expect(bus.Master().Cyc).To(BeTrue())
			Expect(m.Admitting()).To(BeFalse())
		}
	})

	It("should negate stb and cyc on the tick that samples ack", func() {
		startCycle(newReadReq(0x40))

		bus.DriveSlave(wishbone.SlaveSignals{Dat: 0xdeadbeef, Ack: true})

		madeProgress := m.Tick()

		Expect(madeProgress).To(BeTrue())
		Expect(bus.Master().Stb).To(BeFalse())
		Expect(bus.Master().Cyc).To(BeFalse())
		Expect(m.Admitting()).To(BeTrue())
	})

	It("should pulse the response for exactly one tick", func() {
		req := newReadReq(0x40)
		startCycle(req)

		bus.DriveSlave(wishbone.SlaveSignals{Dat: 0xdeadbeef, Ack: true})
		m.Tick()
		bus.DriveSlave(wishbone.SlaveSignals{})

		var sent *wishbone.TransRsp
		topPort.EXPECT().Send(gomock.Any()).
			Do(func(msg sim.Msg) {
				sent = msg.(*wishbone.TransRsp)
			}).
			Return(nil)
		topPort.EXPECT().PeekIncoming().Return(nil)

		madeProgress := m.Tick()

		Expect(madeProgress).To(BeTrue())
		Expect(sent.GetRspTo()).To(Equal(req.ID))
		Expect(sent.Dst).To(Equal(req.Src))
		Expect(sent.Data).To(Equal(uint64(0xdeadbeef)))

		topPort.EXPECT().PeekIncoming().Return(nil)

		madeProgress = m.Tick()

		Expect(madeProgress).To(BeFalse())
	})

	It("should admit a new request on the tick after the response", func() {
		startCycle(newReadReq(0x40))

		bus.DriveSlave(wishbone.SlaveSignals{Dat: 0x1, Ack: true})
		m.Tick()
		bus.DriveSlave(wishbone.SlaveSignals{})

		topPort.EXPECT().Send(gomock.Any()).Return(nil)
		topPort.EXPECT().PeekIncoming().Return(nil)
		m.Tick()

		startCycle(newReadReq(0x44))

		Expect(bus.Master().Adr).To(Equal(uint64(0x44)))
	})

	It("should mask the address and data to the configured widths", func() {
		m.spec = wishbone.Spec{AddrWidth: 16, DataWidth: 16}

		startCycle(newWriteReq(0x123456, 0xabcdef, 0x3))

		out := bus.Master()
		Expect(out.Adr).To(Equal(uint64(0x3456)))
		Expect(out.Dat).To(Equal(uint64(0xcdef)))
	})

	It("should force all outputs low while reset is asserted", func() {
		startCycle(newReadReq(0x40))

		bus.AssertReset()

		madeProgress := m.Tick()

		Expect(madeProgress).To(BeTrue())
		Expect(bus.Master()).To(Equal(wishbone.MasterSignals{}))
		Expect(m.Admitting()).To(BeTrue())

		madeProgress = m.Tick()

		Expect(madeProgress).To(BeFalse())
	})

	It("should not admit requests while the fabric is not ready", func() {
		bus.SetMasterReady(false)

		madeProgress := m.Tick()

		Expect(madeProgress).To(BeFalse())
		Expect(bus.Master().Stb).To(BeFalse())
	})

	It("should panic on an unexpected message type", func() {
		rsp := wishbone.TransRspBuilder{}.
			WithSrc("Someone").
			WithDst(topPort.AsRemote()).
			Build()
		topPort.EXPECT().PeekIncoming().Return(rsp)

		Expect(func() { m.Tick() }).To(Panic())
	})

	It("should panic if the response consumer backpressures", func() {
		startCycle(newReadReq(0x40))

		bus.DriveSlave(wishbone.SlaveSignals{Dat: 0x1, Ack: true})
		m.Tick()

		topPort.EXPECT().Send(gomock.Any()).Return(sim.NewSendError())

		Expect(func() { m.Tick() }).To(Panic())
	})
})

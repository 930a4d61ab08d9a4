package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/buslab/wishbone/wishbone"
)

var _ = Describe("Bus signal collection", func() {
	var (
		timeTeller *testTimeTeller
		writer     *capturingWriter
		tracer     *DBTracer
		bus        *wishbone.Bus
	)

	BeforeEach(func() {
		timeTeller = &testTimeTeller{}
		writer = &capturingWriter{}
		tracer = NewDBTracer(timeTeller, writer)
		bus = wishbone.NewBus("Bus")

		CollectBusSignals(bus, timeTeller, tracer)
	})

	It("should record master drives", func() {
		bus.DriveMaster(wishbone.MasterSignals{
			Adr: 0x40, Sel: 0xf, Stb: true, Cyc: true,
		})

		Expect(writer.tasks).To(HaveLen(1))
		Expect(writer.tasks[0].Kind).To(Equal("master_drive"))
		Expect(writer.tasks[0].Where).To(Equal("Bus"))
		Expect(writer.tasks[0].What).To(ContainSubstring("stb=true"))
	})

	It("should record slave drives and reset transitions", func() {
		bus.DriveSlave(wishbone.SlaveSignals{Dat: 0x1, Ack: true})
		bus.AssertReset()

		Expect(writer.tasks).To(HaveLen(2))
		Expect(writer.tasks[0].Kind).To(Equal("slave_drive"))
		Expect(writer.tasks[1].Kind).To(Equal("reset"))
	})
})

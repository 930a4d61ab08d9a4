package wishbone

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/buslab/wishbone/sim"
)

type wakeCounter struct {
	count int
}

func (w *wakeCounter) TickLater() {
	w.count++
}

type recordingHook struct {
	positions []string
}

func (h *recordingHook) Func(ctx sim.HookCtx) {
	h.positions = append(h.positions, ctx.Pos.Name)
}

var _ = Describe("Bus", func() {
	var (
		bus        *Bus
		masterSide *wakeCounter
		slaveSide  *wakeCounter
	)

	BeforeEach(func() {
		bus = NewBus("Bus")
		masterSide = &wakeCounter{}
		slaveSide = &wakeCounter{}
		bus.AttachMasterSide(masterSide)
		bus.AttachSlaveSide(slaveSide)
	})

	It("should start with all signals negated and fabric ready", func() {
		Expect(bus.Master()).To(Equal(MasterSignals{}))
		Expect(bus.Slave()).To(Equal(SlaveSignals{}))
		Expect(bus.ResetAsserted()).To(BeFalse())
		Expect(bus.MasterReady()).To(BeTrue())
	})

	It("should wake the slave side when the master bundle changes", func() {
		bus.DriveMaster(MasterSignals{Adr: 0x4, Stb: true, Cyc: true})

		Expect(bus.Master().Stb).To(BeTrue())
		Expect(slaveSide.count).To(Equal(1))
		Expect(masterSide.count).To(Equal(0))
	})

	It("should wake the master side when the slave bundle changes", func() {
		bus.DriveSlave(SlaveSignals{Dat: 0x12, Ack: true})

		Expect(bus.Slave().Ack).To(BeTrue())
		Expect(masterSide.count).To(Equal(1))
		Expect(slaveSide.count).To(Equal(0))
	})

	It("should ignore a drive that does not change the wires", func() {
		s := MasterSignals{Adr: 0x4, Stb: true, Cyc: true}

		bus.DriveMaster(s)
		bus.DriveMaster(s)

		Expect(slaveSide.count).To(Equal(1))
	})

	It("should wake both sides on a reset transition", func() {
		bus.AssertReset()

		Expect(bus.ResetAsserted()).To(BeTrue())
		Expect(masterSide.count).To(Equal(1))
		Expect(slaveSide.count).To(Equal(1))

		bus.AssertReset()

		Expect(masterSide.count).To(Equal(1))

		bus.DeassertReset()

		Expect(bus.ResetAsserted()).To(BeFalse())
		Expect(masterSide.count).To(Equal(2))
		Expect(slaveSide.count).To(Equal(2))
	})

	It("should wake the master side when fabric readiness changes", func() {
		bus.SetMasterReady(false)

		Expect(bus.MasterReady()).To(BeFalse())
		Expect(masterSide.count).To(Equal(1))

		bus.SetMasterReady(false)

		Expect(masterSide.count).To(Equal(1))
	})

	It("should invoke hooks on drives", func() {
		hook := &recordingHook{}
		bus.AcceptHook(hook)

		bus.DriveMaster(MasterSignals{Stb: true, Cyc: true})
		bus.DriveSlave(SlaveSignals{Ack: true})
		bus.AssertReset()

		Expect(hook.positions).To(Equal([]string{
			HookPosMasterDrive.Name,
			HookPosSlaveDrive.Name,
			HookPosReset.Name,
		}))
	})
})

package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/buslab/wishbone/sim"
)

var _ = Describe("Api", func() {
	var (
		mockCtrl *gomock.Controller
		domain   *MockNamedHookable
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		domain = NewMockNamedHookable(mockCtrl)
		domain.EXPECT().NumHooks().Return(1).AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should invoke the task-start hook", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		domain.EXPECT().InvokeHook(gomock.Any()).Do(func(ctx sim.HookCtx) {
			Expect(ctx.Pos).To(BeIdenticalTo(HookPosTaskStart))

			task := ctx.Item.(Task)
			Expect(task.ID).To(Equal("id"))
			Expect(task.ParentID).To(Equal("parent"))
			Expect(task.Kind).To(Equal("kind"))
			Expect(task.What).To(Equal("what"))
			Expect(task.Where).To(Equal("domain"))
		})

		StartTask("id", "parent", domain, "kind", "what", nil)
	})

	It("should invoke the task-end hook", func() {
		domain.EXPECT().InvokeHook(gomock.Any()).Do(func(ctx sim.HookCtx) {
			Expect(ctx.Pos).To(BeIdenticalTo(HookPosTaskEnd))
			Expect(ctx.Item.(Task).ID).To(Equal("id"))
		})

		EndTask("id", domain)
	})

	It("should do nothing when the domain has no hooks", func() {
		noHookDomain := NewMockNamedHookable(mockCtrl)
		noHookDomain.EXPECT().NumHooks().Return(0).AnyTimes()

		StartTask("id", "parent", noHookDomain, "kind", "what", nil)
		AddTaskStep("id", noHookDomain, "step")
		EndTask("id", noHookDomain)
	})

	It("should panic if ID is not given", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		Expect(func() {
			StartTask("", "123", domain, "kind", "what", nil)
		}).Should(Panic())
	})

	It("should panic if domain's name is empty", func() {
		domain.EXPECT().Name().Return("").AnyTimes()
		Expect(func() {
			StartTask("id", "123", domain, "kind", "what", nil)
		}).Should(Panic())
	})

	It("should panic if kind is empty", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		Expect(func() {
			StartTask("id", "123", domain, "", "what", nil)
		}).Should(Panic())
	})

	It("should panic if what is empty", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		Expect(func() {
			StartTask("id", "123", domain, "kind", "", nil)
		}).Should(Panic())
	})

	It("should name request tasks after the message and receiver", func() {
		domain.EXPECT().Name().Return("Comp").AnyTimes()

		msg := &sampleMsg{}
		msg.ID = "msg1"

		Expect(MsgIDAtReceiver(msg, domain)).To(Equal("msg1@Comp"))
	})
})

type sampleMsg struct {
	sim.MsgMeta
}

func (m *sampleMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

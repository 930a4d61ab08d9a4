package wishbone

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/buslab/wishbone/sim"
)

var _ = Describe("Transaction protocol", func() {
	It("should build read requests", func() {
		req := TransReqBuilder{}.
			WithSrc("requester").
			WithDst("master").
			WithAddr(0x40).
			WithByteEnable(0xf).
			Build()

		Expect(req.ID).NotTo(BeEmpty())
		Expect(req.Src).To(Equal(sim.RemotePort("requester")))
		Expect(req.Dst).To(Equal(sim.RemotePort("master")))
		Expect(req.Addr).To(Equal(uint64(0x40)))
		Expect(req.IsWrite).To(BeFalse())
		Expect(req.ByteEnable).To(Equal(uint64(0xf)))
	})

	It("should build write requests", func() {
		req := TransReqBuilder{}.
			WithSrc("requester").
			WithDst("master").
			WithAddr(0x40).
			WithData(0xcafebabe).
			AsWrite().
			WithByteEnable(0x3).
			Build()

		Expect(req.IsWrite).To(BeTrue())
		Expect(req.Data).To(Equal(uint64(0xcafebabe)))
	})

	It("should build responses that link back to the request", func() {
		req := TransReqBuilder{}.
			WithSrc("requester").
			WithDst("master").
			Build()

		rsp := TransRspBuilder{}.
			WithSrc("master").
			WithDst("requester").
			WithRspTo(req.ID).
			WithData(0xdeadbeef).
			Build()

		Expect(rsp.GetRspTo()).To(Equal(req.ID))
		Expect(rsp.Data).To(Equal(uint64(0xdeadbeef)))

		var asRsp sim.Rsp = rsp
		Expect(asRsp.GetRspTo()).To(Equal(req.ID))
	})

	It("should give each message a distinct ID", func() {
		req1 := TransReqBuilder{}.WithSrc("a").WithDst("b").Build()
		req2 := TransReqBuilder{}.WithSrc("a").WithDst("b").Build()

		Expect(req1.ID).NotTo(Equal(req2.ID))
	})
})

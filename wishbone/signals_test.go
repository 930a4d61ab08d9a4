package wishbone

import (
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Signal bundles", func() {
	It("should reset every master-driven signal", func() {
		s := MasterSignals{
			Adr: 0x1000,
			Dat: 0xdeadbeef,
			Sel: 0xf,
			We:  true,
			Stb: true,
			Cyc: true,
		}

		s.Reset()

		Expect(reflect.ValueOf(s).IsZero()).To(BeTrue())
	})

	It("should reset every slave-driven signal", func() {
		s := SlaveSignals{
			Dat: 0xcafebabe,
			Ack: true,
		}

		s.Reset()

		Expect(reflect.ValueOf(s).IsZero()).To(BeTrue())
	})
})

package transition

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/momos/naming"
)

var _ = Describe("Key", func() {
	DescribeTable("composition",
		func(k Key, expected string) {
			Expect(k.String()).To(Equal(expected))
		},
		Entry("base", New("wait", "send"), "wait_send"),
		Entry("typed", New("wait", "send").WithType("timeout"),
			"wait_send$timeout"),
		Entry("variant", New("wait", "send").WithType("timeout").WithVariant("late"),
			"wait_send$timeout#late"),
		Entry("underscored states", New("STATE_WAIT", "STATE_SEND"),
			"STATE_WAIT_STATE_SEND"),
	)

	It("should drop parts for the fallback tiers", func() {
		k := New("a", "b").WithType("t").WithVariant("v")

		Expect(k.Typed()).To(Equal(Key{From: "a", To: "b", Type: "t"}))
		Expect(k.Base()).To(Equal(Key{From: "a", To: "b"}))
	})

	It("should accept well-formed keys", func() {
		Expect(New("a", "b").Validate()).To(Succeed())
		Expect(New("a", "b").WithType("t").Validate()).To(Succeed())
		Expect(New("a", "b").WithType("t").WithVariant("v").Validate()).
			To(Succeed())
	})

	It("should reject a variant without type", func() {
		err := New("a", "b").WithVariant("v").Validate()

		Expect(err).To(MatchError(ErrVariantWithoutType))
		Expect(err).To(MatchError(ErrMalformedKey))
	})

	DescribeTable("malformed parts",
		func(k Key) {
			err := k.Validate()
			Expect(err).To(MatchError(ErrMalformedKey))
			Expect(err).To(MatchError(naming.ErrInvalidPart))
		},
		Entry("empty from", New("", "b")),
		Entry("empty to", New("a", "")),
		Entry("separator in state", New("a$x", "b")),
		Entry("separator in type", New("a", "b").WithType("t#x")),
		Entry("separator in variant", New("a", "b").WithType("t").WithVariant("v$")),
	)
})

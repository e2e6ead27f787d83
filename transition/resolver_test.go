package transition

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/momos/arg"
	"github.com/sarchlab/momos/hooking"
	"github.com/sarchlab/momos/registry"
)

var _ = Describe("Resolver", func() {
	var (
		reg   *registry.Registry
		res   *Resolver
		calls map[string]int
	)

	handler := func(name string) registry.Func {
		return func(in arg.Value) arg.Value {
			calls[name]++
			return arg.Text(name)
		}
	}

	BeforeEach(func() {
		reg = registry.New()
		res = NewResolver(reg)
		calls = map[string]int{}
	})

	It("should register under the prepare prefix", func() {
		Expect(res.Prepare(New("wait", "send"), handler("base"))).To(Succeed())

		Expect(reg.Keys()).To(Equal([]string{"__prepare_wait_send"}))
		Expect(res.Has(New("wait", "send"))).To(BeTrue())
	})

	It("should reject malformed keys at registration", func() {
		err := res.Prepare(New("wait", "send").WithVariant("late"), handler("x"))

		Expect(err).To(MatchError(ErrVariantWithoutType))
		Expect(reg.Len()).To(Equal(0))
	})

	It("should fall back to the base key", func() {
		Expect(res.Prepare(New("wait", "send"), handler("base"))).To(Succeed())

		out, tier, err := res.Resolve(
			New("wait", "send").WithType("timeout").WithVariant("late"),
			arg.None())

		Expect(err).NotTo(HaveOccurred())
		Expect(tier).To(Equal(TierBase))
		Expect(out.MustText()).To(Equal("base"))
		Expect(calls).To(Equal(map[string]int{"base": 1}))
	})

	It("should stop at the typed key", func() {
		Expect(res.Prepare(New("wait", "send").WithType("timeout"),
			handler("typed"))).To(Succeed())
		Expect(res.Prepare(New("wait", "recv"), handler("other-base"))).
			To(Succeed())

		_, tier, _ := res.Resolve(
			New("wait", "send").WithType("timeout").WithVariant("early"),
			arg.None())

		Expect(tier).To(Equal(TierTyped))
		Expect(calls).To(Equal(map[string]int{"typed": 1}))
	})

	It("should not match another type's key", func() {
		Expect(res.Prepare(New("wait", "send").WithType("receive"),
			handler("receive"))).To(Succeed())

		_, tier, _ := res.Resolve(
			New("wait", "send").WithType("timeout").WithVariant("late"),
			arg.None())

		Expect(tier).To(Equal(TierNone))
		Expect(calls).To(BeEmpty())
	})

	It("should prefer the variant handler", func() {
		Expect(res.Prepare(New("wait", "send"), handler("base"))).To(Succeed())
		Expect(res.Prepare(
			New("wait", "send").WithType("timeout").WithVariant("late"),
			handler("variant"))).To(Succeed())

		found := res.Run(
			New("wait", "send").WithType("timeout").WithVariant("late"),
			arg.Float(2))

		Expect(found).To(BeTrue())
		Expect(calls).To(Equal(map[string]int{"variant": 1}))
	})

	It("should pass the argument through", func() {
		var got arg.Value
		Expect(res.Prepare(New("a", "b"), func(in arg.Value) arg.Value {
			got = in
			return arg.None()
		})).To(Succeed())

		res.Run(New("a", "b").WithType("t"), arg.Float(1.5))

		Expect(got.MustFloat()).To(Equal(1.5))
	})

	It("should report not found", func() {
		Expect(res.Run(New("a", "b"), arg.None())).To(BeFalse())
	})

	It("should reject a variant without type at resolution", func() {
		Expect(res.Prepare(New("a", "b"), handler("base"))).To(Succeed())

		_, tier, err := res.Resolve(New("a", "b").WithVariant("v"), arg.None())

		Expect(err).To(MatchError(ErrMalformedKey))
		Expect(tier).To(Equal(TierNone))
		Expect(calls).To(BeEmpty())
		Expect(res.Run(New("a", "b").WithVariant("v"), arg.None())).
			To(BeFalse())
	})

	It("should reject transitions that compose like another", func() {
		Expect(res.Prepare(New("A_B", "C"), handler("AB->C"))).To(Succeed())

		err := res.Prepare(New("A", "B_C"), handler("A->BC"))
		Expect(err).To(MatchError(ErrAmbiguousKey))
		Expect(err).To(MatchError(ErrMalformedKey))

		err = res.Prepare(New("A", "B_C").WithType("t"), handler("typed"))
		Expect(err).To(MatchError(ErrAmbiguousKey))
		Expect(reg.Keys()).To(Equal([]string{"__prepare_A_B_C"}))

		out, tier, err := res.Resolve(New("A_B", "C"), arg.None())
		Expect(err).NotTo(HaveOccurred())
		Expect(tier).To(Equal(TierBase))
		Expect(out.MustText()).To(Equal("AB->C"))
	})

	It("should not run another transition's preparation", func() {
		Expect(res.Prepare(New("A_B", "C"), handler("AB->C"))).To(Succeed())

		_, tier, err := res.Resolve(New("A", "B_C").WithType("t"), arg.None())

		Expect(err).To(MatchError(ErrAmbiguousKey))
		Expect(tier).To(Equal(TierNone))
		Expect(calls).To(BeEmpty())
	})

	It("should accept several tiers of one transition", func() {
		Expect(res.Prepare(New("A_B", "C"), handler("base"))).To(Succeed())
		Expect(res.Prepare(New("A_B", "C").WithType("t"), handler("typed"))).
			To(Succeed())
		Expect(res.Prepare(New("A_B", "C").WithType("t").WithVariant("v"),
			handler("variant"))).To(Succeed())
		Expect(res.Prepare(New("A_B", "C"), handler("base again"))).
			To(Succeed())

		Expect(reg.Len()).To(Equal(3))
	})

	It("should notify hooks of every resolution", func() {
		var seen []Tier
		res.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			Expect(ctx.Pos).To(BeIdenticalTo(HookPosResolve))
			Expect(ctx.Item).To(Equal(New("a", "b").WithType("t")))
			seen = append(seen, ctx.Detail.(Tier))
		}))
		Expect(res.Prepare(New("a", "b"), handler("base"))).To(Succeed())

		res.Run(New("a", "b").WithType("t"), arg.None())

		Expect(seen).To(Equal([]Tier{TierBase}))
	})

	It("should print tiers", func() {
		Expect(TierVariant.String()).To(Equal("variant"))
		Expect(TierNone.Found()).To(BeFalse())
		Expect(TierTyped.Found()).To(BeTrue())
	})
})

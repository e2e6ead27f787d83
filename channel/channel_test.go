package channel

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/momos/hooking"
)

var _ = Describe("Channel", func() {
	var (
		mockCtrl *gomock.Controller
		ch       *Channel
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		ch = Builder{}.Build("Link.RX")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should pop what was pushed", func() {
		ch.Push([]byte{42}, 1, 100)

		buf := make([]byte, 8)
		length, timestamp, ok := ch.PopInto(buf)

		Expect(ok).To(BeTrue())
		Expect(length).To(Equal(uint32(1)))
		Expect(buf[:length]).To(Equal([]byte{42}))
		Expect(timestamp).To(Equal(uint64(100)))

		_, _, ok = ch.PopInto(buf)
		Expect(ok).To(BeFalse())
	})

	It("should keep FIFO order", func() {
		ch.Push([]byte("m1"), 2, 1)
		ch.Push([]byte("m2"), 2, 2)
		ch.Push([]byte("m3"), 2, 3)

		var got []string
		for i := 0; i < 3; i++ {
			msg, ok := ch.Pop()
			Expect(ok).To(BeTrue())
			got = append(got, string(msg.Payload))
		}

		Expect(got).To(Equal([]string{"m1", "m2", "m3"}))
		Expect(ch.Available()).To(BeFalse())
	})

	It("should copy only length bytes", func() {
		msg := ch.Push([]byte{1, 2, 3, 4}, 2, 0)

		Expect(msg.Payload).To(Equal([]byte{1, 2}))
		Expect(msg.Length).To(Equal(uint32(2)))
	})

	It("should not alias the caller's data", func() {
		data := []byte{1, 2}
		ch.Push(data, 2, 0)
		data[0] = 9

		msg, _ := ch.Peek()
		msg.Payload[1] = 9

		popped, _ := ch.Pop()
		Expect(popped.Payload).To(Equal([]byte{1, 2}))
	})

	It("should leave the buffer untouched when empty", func() {
		buf := []byte{7, 7}

		_, _, ok := ch.PopInto(buf)

		Expect(ok).To(BeFalse())
		Expect(buf).To(Equal([]byte{7, 7}))
	})

	It("should isolate after clear", func() {
		ch.Push([]byte{1}, 1, 0)
		ch.Push([]byte{2}, 1, 0)

		ch.Clear()

		Expect(ch.Available()).To(BeFalse())
		Expect(ch.Size()).To(Equal(0))
		_, ok := ch.Pop()
		Expect(ok).To(BeFalse())
	})

	It("should pop the last message", func() {
		ch.Push([]byte{1}, 1, 0)
		ch.Push([]byte{2}, 1, 0)

		msg, ok := ch.PopLast()
		Expect(ok).To(BeTrue())
		Expect(msg.Payload).To(Equal([]byte{2}))

		msg, _ = ch.Pop()
		Expect(msg.Payload).To(Equal([]byte{1}))

		_, ok = ch.PopLast()
		Expect(ok).To(BeFalse())
	})

	It("should number messages", func() {
		first := ch.Push([]byte{1}, 1, 0)
		second := ch.Push([]byte{2}, 1, 0)

		Expect(first.ID).To(Equal("1"))
		Expect(second.ID).To(Equal("2"))
	})

	It("should panic on programmer errors", func() {
		Expect(func() { ch.Push([]byte{1}, 2, 0) }).To(Panic())

		ch.Push([]byte{1, 2}, 2, 0)
		Expect(func() { ch.PopInto(make([]byte, 1)) }).To(Panic())
		Expect(ch.Size()).To(Equal(1))

		Expect(func() { Builder{}.Build("") }).To(Panic())
		Expect(func() { Builder{}.WithCapacity(-1).Build("C") }).To(Panic())
	})

	It("should respect a capacity", func() {
		bounded := Builder{}.WithCapacity(1).Build("Bounded")

		Expect(bounded.Capacity()).To(Equal(1))
		bounded.Push([]byte{1}, 1, 0)
		Expect(bounded.CanPush()).To(BeFalse())
		Expect(func() { bounded.Push([]byte{2}, 1, 0) }).To(Panic())
	})

	It("should invoke hooks on push, pop and clear", func() {
		hook := NewMockHook(mockCtrl)
		ch.AcceptHook(hook)

		gomock.InOrder(
			hook.EXPECT().Func(gomock.Any()).Do(func(ctx hooking.HookCtx) {
				Expect(ctx.Pos).To(BeIdenticalTo(HookPosPush))
				Expect(ctx.Domain).To(BeIdenticalTo(ch))
				Expect(ctx.Item.(Message).Payload).To(Equal([]byte{5}))
			}),
			hook.EXPECT().Func(gomock.Any()).Do(func(ctx hooking.HookCtx) {
				Expect(ctx.Pos).To(BeIdenticalTo(HookPosPop))
			}),
			hook.EXPECT().Func(gomock.Any()).Do(func(ctx hooking.HookCtx) {
				Expect(ctx.Pos).To(BeIdenticalTo(HookPosClear))
				Expect(ctx.Item).To(Equal(0))
			}),
		)

		ch.Push([]byte{5}, 1, 0)
		ch.Pop()
		ch.Clear()
	})
})

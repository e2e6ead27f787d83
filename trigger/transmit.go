package trigger

import (
	"bytes"

	"github.com/sarchlab/momos/arg"
	"github.com/sarchlab/momos/channel"
	"github.com/sarchlab/momos/registry"
)

// TypeTransmit is the trigger type of transitions that make the code under
// test send messages.
const TypeTransmit = "transmit"

// Transmit expects the code under test to send frames. Its preparations drop
// whatever was transmitted before the step and return the number of frames
// the mode stands for. Check compares that number with what was sent during
// the step.
type Transmit struct {
	Link *channel.Link

	// Frame, if set, restricts counting to frames equal to it.
	Frame []byte

	// Count is the number of frames the transition sends. Zero means one.
	Count int

	// CountInsensitive marks transitions where only sending at all matters.
	CountInsensitive bool
}

// Type returns "transmit".
func (t Transmit) Type() string {
	return TypeTransmit
}

// Modes returns ok and no, plus more and less where they apply.
func (t Transmit) Modes() []Mode {
	return countModes("sent", t.Count, t.CountInsensitive, t.expect)
}

func (t Transmit) expect(n int) registry.Func {
	return func(arg.Value) arg.Value {
		t.Link.TX().Clear()
		return arg.Int(int64(n))
	}
}

// Sent drains the frames transmitted so far and counts those that match
// Frame.
func (t Transmit) Sent() int {
	n := 0

	for _, msg := range t.Link.CollectAll() {
		if t.Frame == nil || bytes.Equal(msg.Payload, t.Frame) {
			n++
		}
	}

	return n
}

// Check drains the transmitted frames and tells if they match the count
// returned by the preparation. For count-insensitive transmissions any
// positive count matches any other.
func (t Transmit) Check(prepared arg.Value) bool {
	want, ok := prepared.AsInt()
	if !ok {
		return false
	}

	got := int64(t.Sent())

	if t.CountInsensitive && want > 0 {
		return got > 0
	}

	return got == want
}

// Drain removes everything the code under test transmitted and returns the
// number of frames.
func Drain(link *channel.Link) int {
	return len(link.CollectAll())
}

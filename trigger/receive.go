package trigger

import (
	"github.com/sarchlab/momos/arg"
	"github.com/sarchlab/momos/channel"
	"github.com/sarchlab/momos/registry"
)

// TypeReceive is the trigger type of transitions caused by incoming messages.
const TypeReceive = "receive"

// Receive provides frames to the code under test. The preparation argument,
// if a byte buffer, replaces Frame.
type Receive struct {
	Link  *channel.Link
	Frame []byte

	// Count is the number of frames the transition expects. Zero means one.
	Count int

	// CountInsensitive marks transitions that do not care how many frames
	// arrive, which makes the more and less variants meaningless.
	CountInsensitive bool
}

// Type returns "receive".
func (r Receive) Type() string {
	return TypeReceive
}

// Modes returns ok and no, plus more and less where they apply.
func (r Receive) Modes() []Mode {
	return countModes("received", r.Count, r.CountInsensitive, r.provide)
}

func (r Receive) provide(n int) registry.Func {
	return func(in arg.Value) arg.Value {
		frame := r.Frame
		if b, ok := in.AsBytes(); ok {
			frame = b
		}

		for i := 0; i < n; i++ {
			r.Link.Provide(frame)
		}

		return arg.Int(int64(n))
	}
}

package trigger

import (
	"time"

	"github.com/sarchlab/momos/arg"
	"github.com/sarchlab/momos/timing"
)

// TypeTimeout is the trigger type of elapsed-time transitions.
const TypeTimeout = "timeout"

// Timeout lets time pass on a clock. The preparation argument, if numeric,
// overrides After in seconds.
type Timeout struct {
	Clock timing.Clock
	After time.Duration
}

// Type returns "timeout".
func (t Timeout) Type() string {
	return TypeTimeout
}

// Modes returns ok, earlier and later.
func (t Timeout) Modes() []Mode {
	return []Mode{
		{
			Variant:     VariantOK,
			Description: "Timeout equals expected value.",
			Prepare:     t.wait(1),
		},
		{
			Variant:     VariantEarlier,
			Description: "Timeout less than expected.",
			Fails:       true,
			Prepare:     t.wait(0.1),
		},
		{
			Variant:     VariantLater,
			Description: "Timeout greater than expected.",
			Prepare:     t.wait(1.9),
		},
	}
}

func (t Timeout) wait(factor float64) func(arg.Value) arg.Value {
	return func(in arg.Value) arg.Value {
		d := t.After
		if seconds, ok := in.AsFloat(); ok {
			d = time.Duration(seconds * float64(time.Second))
		}

		waited := time.Duration(scale(float64(d), factor))
		t.Clock.Wait(waited)

		return arg.Int(int64(waited))
	}
}

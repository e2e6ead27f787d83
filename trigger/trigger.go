// Package trigger provides ready-made preparations for the usual causes of a
// transition: a timeout elapsing, messages arriving and messages being sent.
// Each trigger offers variants that provoke the expected behavior or a
// deviation from it.
package trigger

import (
	"fmt"
	"math"

	"github.com/sarchlab/momos/registry"
	"github.com/sarchlab/momos/transition"
)

// Standard variant names.
const (
	VariantOK      = "ok"
	VariantEarlier = "earlier"
	VariantLater   = "later"
	VariantNo      = "no"
	VariantMore    = "more"
	VariantLess    = "less"
)

// A Mode is one way of preparing a trigger.
type Mode struct {
	Variant     string
	Description string

	// Fails tells if the transition is expected not to happen in this mode.
	Fails bool

	Prepare registry.Func
}

// A Trigger is a cause of a transition with a set of modes. The first mode
// is the one that provokes the transition as intended.
type Trigger interface {
	Type() string
	Modes() []Mode
}

// Register registers the modes of t as preparations for the transition from
// -> to. The intended mode is also registered under the typed key, so that
// requests for unknown variants fall back to it.
func Register(res *transition.Resolver, from, to string, t Trigger) error {
	modes := t.Modes()
	if len(modes) == 0 {
		return fmt.Errorf("trigger %s has no modes", t.Type())
	}

	typed := transition.New(from, to).WithType(t.Type())
	if err := res.Prepare(typed, modes[0].Prepare); err != nil {
		return err
	}

	for _, m := range modes {
		if err := res.Prepare(typed.WithVariant(m.Variant), m.Prepare); err != nil {
			return err
		}
	}

	return nil
}

// Find returns the mode of t with the given variant.
func Find(t Trigger, variant string) (Mode, bool) {
	for _, m := range t.Modes() {
		if m.Variant == variant {
			return m, true
		}
	}

	return Mode{}, false
}

// scale multiplies n by factor and rounds half to even.
func scale(n float64, factor float64) float64 {
	return math.RoundToEven(n * factor)
}

// countModes builds the modes of triggers that count frames. verb completes
// the mode descriptions. A count below one means one frame.
func countModes(
	verb string,
	count int,
	insensitive bool,
	prepare func(n int) registry.Func,
) []Mode {
	if count < 1 {
		count = 1
	}

	modes := []Mode{
		{
			Variant:     VariantOK,
			Description: fmt.Sprintf("Expected is %s.", verb),
			Prepare:     prepare(count),
		},
		{
			Variant:     VariantNo,
			Description: fmt.Sprintf("No message is %s.", verb),
			Fails:       true,
			Prepare:     prepare(0),
		},
	}

	if insensitive {
		return modes
	}

	modes = append(modes, Mode{
		Variant:     VariantMore,
		Description: fmt.Sprintf("More messages are %s than expected.", verb),
		Fails:       true,
		Prepare:     prepare(int(scale(float64(count), 1.5))),
	})

	if count > 1 {
		modes = append(modes, Mode{
			Variant:     VariantLess,
			Description: fmt.Sprintf("Less messages are %s than expected.", verb),
			Fails:       true,
			Prepare:     prepare(int(scale(float64(count), 0.4))),
		})
	}

	return modes
}

package harness

import (
	"log/slog"

	"github.com/sarchlab/momos/arg"
	"github.com/sarchlab/momos/lifecycle"
	"github.com/sarchlab/momos/recording"
	"github.com/sarchlab/momos/transition"
)

// A StepSpec describes one transition to drive.
type StepSpec struct {
	Key transition.Key
	Arg arg.Value

	// Expected is the state code the FSM must be in after the step.
	Expected int64
}

// StepResult is what happened during a step.
type StepResult struct {
	Tier transition.Tier

	// Output is what the preparation returned, such as the number of frames
	// a transmit trigger expects.
	Output arg.Value

	Observed   int64
	StateFound bool
	Passed     bool
}

// Step drives one transition. It runs the preparation resolved for the key,
// runs the progress hook, which is expected to call the FSM's step function,
// and reads the resulting state. The step passes if the state equals
// Expected.
func (f *Fixture) Step(spec StepSpec) StepResult {
	var result StepResult

	out, tier, err := f.resolver.Resolve(spec.Key, spec.Arg)
	if err != nil {
		f.logger.Warn("cannot resolve preparation",
			slog.String("key", spec.Key.String()),
			slog.Any("error", err))
	} else if !tier.Found() {
		f.logger.Warn("no preparation defined",
			slog.String("key", spec.Key.String()))
	}

	result.Tier = tier
	result.Output = out

	f.hooks.Run(lifecycle.HookProgress)

	result.Observed, result.StateFound = ReadState[int64](f)
	result.Passed = result.StateFound && result.Observed == spec.Expected

	f.record(spec, result)
	f.stepIndex++

	return result
}

func (f *Fixture) record(spec StepSpec, result StepResult) {
	if f.recorder == nil {
		return
	}

	f.recorder.Record(recording.Step{
		RunID:      f.runID,
		Case:       f.caseID,
		Index:      f.stepIndex,
		From:       spec.Key.From,
		To:         spec.Key.To,
		Type:       spec.Key.Type,
		Variant:    spec.Key.Variant,
		Tier:       result.Tier.String(),
		Expected:   spec.Expected,
		Observed:   result.Observed,
		StateFound: result.StateFound,
		Passed:     result.Passed,
		Time:       f.clock.Now(),
	})
}

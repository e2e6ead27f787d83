package recording

import (
	"encoding/json"
	"io"
)

// Report is the JSON document that summarizes a run.
type Report struct {
	RunID        string       `json:"runId"`
	SuccessCount int          `json:"successCount"`
	Cases        []CaseReport `json:"testCases"`
}

// CaseReport groups the steps of one test case. A case succeeds when all of
// its steps pass.
type CaseReport struct {
	ID      string       `json:"id"`
	Success bool         `json:"success"`
	Steps   []StepReport `json:"steps"`
}

// StepReport is one step in a report.
type StepReport struct {
	FromState string `json:"fromState"`
	ToState   string `json:"toState"`
	Trigger   string `json:"trigger,omitempty"`
	Variant   string `json:"variant,omitempty"`
	Tier      string `json:"tier"`
	Expected  int64  `json:"expected"`
	Observed  int64  `json:"observed"`
	Success   bool   `json:"success"`
}

// BuildReport groups steps by case, keeping the order in which cases first
// appear.
func BuildReport(steps []Step) Report {
	report := Report{Cases: []CaseReport{}}
	index := map[string]int{}

	for _, s := range steps {
		if report.RunID == "" {
			report.RunID = s.RunID
		}

		i, ok := index[s.Case]
		if !ok {
			i = len(report.Cases)
			index[s.Case] = i
			report.Cases = append(report.Cases, CaseReport{ID: s.Case, Success: true})
		}

		c := &report.Cases[i]
		c.Steps = append(c.Steps, StepReport{
			FromState: s.From,
			ToState:   s.To,
			Trigger:   s.Type,
			Variant:   s.Variant,
			Tier:      s.Tier,
			Expected:  s.Expected,
			Observed:  s.Observed,
			Success:   s.Passed,
		})
		c.Success = c.Success && s.Passed
	}

	for _, c := range report.Cases {
		if c.Success {
			report.SuccessCount++
		}
	}

	return report
}

// WriteJSONReport writes the report of steps to w.
func WriteJSONReport(w io.Writer, steps []Step) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(BuildReport(steps))
}

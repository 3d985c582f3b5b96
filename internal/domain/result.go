package domain

import "fmt"

// Outcome is the verdict recorded for a single check
type Outcome int

const (
	// Fail is the zero value so an unset outcome never reads as a pass
	Fail Outcome = iota
	Pass
	Disabled
)

var outcomeNames = map[Outcome]string{
	Pass:     "Pass",
	Fail:     "Fail",
	Disabled: "Disabled",
}

// String returns the outcome label used in report lines
func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MarshalText encodes the outcome as its label
func (o Outcome) MarshalText() ([]byte, error) {
	if _, ok := outcomeNames[o]; !ok {
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome label
func (o *Outcome) UnmarshalText(text []byte) error {
	for outcome, name := range outcomeNames {
		if name == string(text) {
			*o = outcome
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", string(text))
}

// Result is the outcome of one descriptor
type Result struct {
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
	Detail  string  `json:"detail,omitempty"` // Why a check failed; empty otherwise
}

// String renders the result the way the playground console shows it, e.g. "Pass: <message>"
func (r Result) String() string {
	return r.Outcome.String() + ": " + r.Message
}

// Report is the aggregated result of one corpus run
type Report struct {
	Passed  bool     `json:"passed"`
	Results []Result `json:"results"`
}

// Counts tallies the outcomes in the report
func (r Report) Counts() (passed, failed, disabled int) {
	for _, res := range r.Results {
		switch res.Outcome {
		case Pass:
			passed++
		case Disabled:
			disabled++
		default:
			failed++
		}
	}
	return passed, failed, disabled
}

// Lines returns the report lines in corpus order
func (r Report) Lines() []string {
	lines := make([]string, len(r.Results))
	for i, res := range r.Results {
		lines[i] = res.String()
	}
	return lines
}

// Failures returns only the failed results
func (r Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Outcome == Fail {
			failed = append(failed, res)
		}
	}
	return failed
}

package validator

import "fmt"

// Detail is the validation outcome for one candidate.
type Detail struct {
	Name     string   `json:"name" yaml:"name"`
	Legal    []string `json:"legal" yaml:"legal"`
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`

	issues []Issue
}

// Issues returns the structured findings behind the message slices.
func (d Detail) Issues() []Issue {
	return d.issues
}

// Clean reports whether the candidate has neither errors nor warnings.
func (d Detail) Clean() bool {
	return len(d.Errors) == 0 && len(d.Warnings) == 0
}

func newDetail(name string, r *Result) Detail {
	return Detail{
		Name:     name,
		Legal:    messages(r.Infos()),
		Errors:   messages(r.Errors()),
		Warnings: messages(r.Warnings()),
		issues:   r.Issues,
	}
}

// Summary aggregates the details of one validation pass. It is rebuilt on
// every call and never mutated afterwards.
type Summary struct {
	AllValid     bool     `json:"all_valid" yaml:"all_valid"`
	ErrorCount   int      `json:"errors" yaml:"errors"`
	WarningCount int      `json:"warnings" yaml:"warnings"`
	Details      []Detail `json:"details" yaml:"details"`
}

// StatusLine is the one-line verdict shown above the details.
func (s *Summary) StatusLine() string {
	if s.AllValid {
		return "All checks passed."
	}
	return fmt.Sprintf("%d error(s), %d warning(s) found.", s.ErrorCount, s.WarningCount)
}

// Offending returns the details that carry at least one error or warning.
func (s *Summary) Offending() []Detail {
	var out []Detail
	for _, d := range s.Details {
		if !d.Clean() {
			out = append(out, d)
		}
	}
	return out
}

// Failed returns the names of candidates with blocking errors.
func (s *Summary) Failed() []string {
	var out []string
	for _, d := range s.Details {
		if len(d.Errors) > 0 {
			out = append(out, d.Name)
		}
	}
	return out
}

// summarize folds per-candidate details into a Summary.
func summarize(details []Detail) *Summary {
	s := &Summary{Details: details}
	for _, d := range details {
		s.ErrorCount += len(d.Errors)
		s.WarningCount += len(d.Warnings)
	}
	s.AllValid = s.ErrorCount == 0
	if s.Details == nil {
		s.Details = []Detail{}
	}
	return s
}

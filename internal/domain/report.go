package domain

import "time"

// Action is a suggested navigation target for fixing a finding. The route
// string is opaque to the engine; the presentation layer resolves it.
type Action struct {
	Label string `json:"label" yaml:"label"`
	Route string `json:"route" yaml:"route"`
}

// Section is one block of the validation report. Success is derived:
// a section succeeds exactly when it has neither errors nor warnings.
type Section struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Errors       []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Calculations []string `json:"calculations,omitempty" yaml:"calculations,omitempty"`
	Successes    []string `json:"successes,omitempty" yaml:"successes,omitempty"`
	Actions      []Action `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// OK reports whether the section carries neither errors nor warnings.
func (s Section) OK() bool {
	return len(s.Errors) == 0 && len(s.Warnings) == 0
}

// Report is the ordered result of one validation run.
type Report struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	SubjectID string    `json:"subject_id" yaml:"subject_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Sections  []Section `json:"sections" yaml:"sections"`
}

// OK reports whether every section is clean.
func (r Report) OK() bool {
	for _, s := range r.Sections {
		if !s.OK() {
			return false
		}
	}
	return true
}

// ErrorCount returns the total number of errors across sections.
func (r Report) ErrorCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Errors)
	}
	return n
}

// WarningCount returns the total number of warnings across sections.
func (r Report) WarningCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Warnings)
	}
	return n
}

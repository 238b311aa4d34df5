package validation

import (
	"strings"
)

// PeriodState is the snapshot of an accounting period (usually a month).
type PeriodState struct {
	Status string `json:"status"`
	Label  string `json:"label,omitempty"`
}

// ExerciseState is the snapshot of a fiscal exercise (ejercicio fiscal).
type ExerciseState struct {
	Status string `json:"status"`
	Year   int    `json:"year,omitempty"`
}

// ValidatePeriodOpen accepts a period whose status is in the catalog's open
// list. A nil period means none was selected.
func (e *Engine) ValidatePeriodOpen(p *PeriodState) Result {
	if p == nil {
		return fail("no period selected")
	}
	if e.catalog.IsOpenPeriodStatus(p.Status) {
		return pass()
	}
	label := strings.TrimSpace(p.Label)
	if label == "" {
		return fail("the selected period is closed (status %q)", p.Status)
	}
	return fail("period %s is closed (status %q)", label, p.Status)
}

// ValidateExerciseOpen accepts a fiscal exercise whose status is in the
// catalog's open list. A nil exercise means none was selected.
func (e *Engine) ValidateExerciseOpen(x *ExerciseState) Result {
	if x == nil {
		return fail("no fiscal exercise selected")
	}
	if e.catalog.IsOpenExerciseStatus(x.Status) {
		return pass()
	}
	if x.Year == 0 {
		return fail("the selected fiscal exercise is closed (status %q)", x.Status)
	}
	return fail("fiscal exercise %d is closed (status %q)", x.Year, x.Status)
}

package validation

import (
	"govledger/internal/budget"
)

// ValidateSequence checks that moment m can be registered on a line whose
// recorded amounts are amounts: every moment before m in seq must hold a
// positive amount. The first moment of a sequence has no predecessor and is
// always valid. A predecessor with exactly zero counts as not registered.
func ValidateSequence(seq budget.Sequence, m budget.Moment, amounts budget.MomentAmounts) Result {
	idx, ok := seq.Index(m)
	if !ok {
		return fail("unrecognized moment %q", m)
	}
	if idx == 0 {
		return pass()
	}

	for _, pred := range seq[:idx] {
		if !amounts.Recorded(pred.Key) {
			return fail("cannot register moment %q: preceding moment %q has no recorded amount", m, pred.Key)
		}
	}
	return pass()
}

// ValidateMomentSequence applies the catalog's expense order.
func (e *Engine) ValidateMomentSequence(m budget.Moment, line budget.MomentAmounts) Result {
	return ValidateSequence(e.expense, m, line)
}

// ValidateRevenueMomentSequence applies the catalog's revenue order.
func (e *Engine) ValidateRevenueMomentSequence(m budget.Moment, concept budget.MomentAmounts) Result {
	return ValidateSequence(e.revenue, m, concept)
}

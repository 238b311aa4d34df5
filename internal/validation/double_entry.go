package validation

import (
	"github.com/shopspring/decimal"
)

// MovementKind is the side of a journal entry line.
type MovementKind string

const (
	Debit  MovementKind = "debit"
	Credit MovementKind = "credit"
)

// Movement is one line of a journal entry (póliza).
type Movement struct {
	Kind   MovementKind    `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// ValidateMinimumMovements requires at least two movements with at least one
// debit and one credit among them.
func ValidateMinimumMovements(movements []Movement) Result {
	if len(movements) == 0 {
		return fail("journal entry has no movements")
	}
	if len(movements) < 2 {
		return fail("journal entry requires at least two movements, got %d", len(movements))
	}

	var debits, credits int
	for _, mv := range movements {
		switch mv.Kind {
		case Debit:
			debits++
		case Credit:
			credits++
		}
	}
	if debits == 0 || credits == 0 {
		return fail("journal entry requires at least one debit and one credit")
	}
	return pass()
}

// ValidateDoubleEntry checks that total debits equal total credits. The
// difference is rounded to cents before comparing, which absorbs
// representation noise from upstream floats (0.1 + 0.2 against 0.3).
func ValidateDoubleEntry(movements []Movement) BalanceResult {
	if len(movements) == 0 {
		return BalanceResult{Result: fail("cannot check the balance of an entry without movements"), Difference: decimal.Zero}
	}

	debits, credits := Totals(movements)
	diff := debits.Sub(credits).Round(2)
	if !diff.IsZero() {
		return BalanceResult{
			Result: fail("journal entry is unbalanced: debits %s, credits %s, difference %s",
				debits.StringFixed(2), credits.StringFixed(2), diff.Abs().StringFixed(2)),
			Difference: diff,
		}
	}
	return BalanceResult{Result: pass(), Difference: diff}
}

// Totals sums debit and credit amounts independently. Movements of any other
// kind are ignored.
func Totals(movements []Movement) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, mv := range movements {
		switch mv.Kind {
		case Debit:
			debits = debits.Add(mv.Amount)
		case Credit:
			credits = credits.Add(mv.Amount)
		}
	}
	return debits, credits
}

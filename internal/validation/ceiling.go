package validation

import (
	"github.com/shopspring/decimal"

	"govledger/internal/budget"
)

const errAmountNotPositive = "amount must be greater than zero"

// ValidateAvailability checks a commitment against the line's ceiling. The
// ceiling is the modified amount when one is recorded, otherwise the approved
// amount; what is available is the ceiling minus what is already committed.
// Available is reported whatever the outcome so callers can show it.
func ValidateAvailability(amount decimal.Decimal, line budget.MomentAmounts) AvailabilityResult {
	ceiling := line.Amount(budget.Modified)
	if !ceiling.IsPositive() {
		ceiling = line.Amount(budget.Approved)
	}
	available := ceiling.Sub(line.Amount(budget.Committed))

	return checkCeiling(amount, available, "available balance")
}

// ValidateAccrualVsCommitted checks an accrual against what has been committed
// and not yet accrued.
func ValidateAccrualVsCommitted(amount decimal.Decimal, line budget.MomentAmounts) AvailabilityResult {
	available := line.Amount(budget.Committed).Sub(line.Amount(budget.Accrued))
	return checkCeiling(amount, available, "committed balance pending accrual")
}

// ValidatePaymentVsAccrued checks a payment against what has been accrued and
// not yet paid.
func ValidatePaymentVsAccrued(amount decimal.Decimal, line budget.MomentAmounts) AvailabilityResult {
	available := line.Amount(budget.Accrued).Sub(line.Amount(budget.Paid))
	return checkCeiling(amount, available, "accrued balance pending payment")
}

func checkCeiling(amount, available decimal.Decimal, what string) AvailabilityResult {
	if !amount.IsPositive() {
		return AvailabilityResult{Result: fail(errAmountNotPositive), Available: available}
	}
	if amount.GreaterThan(available) {
		return AvailabilityResult{
			Result:    fail("amount %s exceeds %s %s", amount.StringFixed(2), what, available.StringFixed(2)),
			Available: available,
		}
	}
	return AvailabilityResult{Result: pass(), Available: available}
}

// ceilingFor returns the ceiling check guarding registration of m, if any.
func ceilingFor(m budget.Moment) (Check, func(decimal.Decimal, budget.MomentAmounts) AvailabilityResult, bool) {
	switch m {
	case budget.Committed:
		return CheckAvailability, ValidateAvailability, true
	case budget.Accrued:
		return CheckAccrualVsCommitted, ValidateAccrualVsCommitted, true
	case budget.Paid:
		return CheckPaymentVsAccrued, ValidatePaymentVsAccrued, true
	default:
		return "", nil, false
	}
}

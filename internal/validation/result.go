package validation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Result is the outcome of a single check. Error is empty when Valid is true.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// AvailabilityResult is a ceiling check outcome with the balance still
// available for the proposed moment.
type AvailabilityResult struct {
	Result
	Available decimal.Decimal `json:"available"`
}

// BalanceResult is a double-entry outcome with the signed difference
// debits − credits, rounded to cents.
type BalanceResult struct {
	Result
	Difference decimal.Decimal `json:"difference"`
}

// DeadlineResult is the asset registration outcome with the days left in the
// registration window (negative once expired).
type DeadlineResult struct {
	Result
	DaysRemaining int `json:"days_remaining"`
}

func pass() Result {
	return Result{Valid: true}
}

func fail(format string, args ...any) Result {
	return Result{Valid: false, Error: fmt.Sprintf(format, args...)}
}

// Check names one validator in a Report.
type Check string

const (
	CheckExerciseOpen         Check = "exercise-open"
	CheckPeriodOpen           Check = "period-open"
	CheckMomentSequence       Check = "moment-sequence"
	CheckAvailability         Check = "availability"
	CheckAccrualVsCommitted   Check = "accrual-vs-committed"
	CheckPaymentVsAccrued     Check = "payment-vs-accrued"
	CheckMinimumMovements     Check = "minimum-movements"
	CheckBalance              Check = "balance"
	CheckRegistrationDeadline Check = "registration-deadline"
	CheckRFC                  Check = "rfc"
	CheckCURP                 Check = "curp"
	CheckCLABE                Check = "clabe"
	CheckOperationKind        Check = "operation-kind"
	CheckPayload              Check = "payload"
)

// Report aggregates every check run for one operation.
//
// Valid is true iff Errors is empty. Skipped lists checks that apply to the
// operation kind but were not run because their context was absent; a skipped
// check never makes a report invalid.
type Report struct {
	Kind    OperationKind `json:"kind"`
	Valid   bool          `json:"valid"`
	Errors  []string      `json:"errors"`
	Failed  []Check       `json:"failed,omitempty"`
	Skipped []Check       `json:"skipped,omitempty"`
}

func newReport(kind OperationKind) *Report {
	return &Report{Kind: kind, Errors: []string{}}
}

func (r *Report) record(check Check, res Result) {
	if res.Valid {
		return
	}
	r.Errors = append(r.Errors, res.Error)
	r.Failed = append(r.Failed, check)
}

func (r *Report) skip(check Check) {
	r.Skipped = append(r.Skipped, check)
}

func (r *Report) finish() Report {
	r.Valid = len(r.Errors) == 0
	return *r
}

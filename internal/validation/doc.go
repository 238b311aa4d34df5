// Package validation decides whether a proposed budget operation is valid
// under the rules of governmental budget execution.
//
// Every check is a pure function over caller-supplied snapshots: no I/O, no
// shared mutable state, safe for concurrent use. Business-rule violations are
// returned inside results, never as Go errors. The package does not decide
// what to persist; a caller that validates and then writes must provide its own
// atomicity around that cycle (row versioning, serializable transactions),
// otherwise two writers can both pass a ceiling check for the same line.
//
// Checks:
//   - moment sequencing for expense and revenue (ValidateSequence, Engine.ValidateMomentSequence)
//   - ceilings between moments (ValidateAvailability, ValidateAccrualVsCommitted, ValidatePaymentVsAccrued)
//   - double entry (ValidateMinimumMovements, ValidateDoubleEntry)
//   - identifiers (ValidateRFC, ValidateCURP, ValidateCLABE)
//   - period and fiscal exercise gates (Engine.ValidatePeriodOpen, Engine.ValidateExerciseOpen)
//   - asset registration deadline (ValidateAssetRegistrationDeadline)
//
// Engine.Validate dispatches an Operation to the checks that apply to its kind
// and aggregates every failure into one Report.
package validation

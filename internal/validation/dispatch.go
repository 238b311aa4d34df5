package validation

import (
	"govledger/internal/budget"
)

// Validate runs every check that applies to op and aggregates the failures.
// Checks never short-circuit each other, so a caller sees all problems at
// once. Checks whose context is absent are skipped, not failed.
func (e *Engine) Validate(op Operation) Report {
	switch o := Deref(op).(type) {
	case ExpenseMoment:
		return e.validateExpenseMoment(o)
	case RevenueMoment:
		return e.validateRevenueMoment(o)
	case JournalEntry:
		return e.validateJournalEntry(o)
	case AssetRegistration:
		return e.validateAssetRegistration(o)
	case IdentifierCheck:
		return e.validateIdentifier(o)
	case UnrecognizedOperation:
		return unrecognized(o.Kind())
	case InvalidPayload:
		return invalidPayload(o)
	case nil:
		return unrecognized("")
	default:
		return unrecognized(op.Kind())
	}
}

func unrecognized(kind OperationKind) Report {
	r := newReport(kind)
	if kind == "" {
		r.record(CheckOperationKind, fail("operation not recognized"))
	} else {
		r.record(CheckOperationKind, fail("operation %q not recognized", kind))
	}
	return r.finish()
}

func invalidPayload(o InvalidPayload) Report {
	r := newReport(o.Kind())
	if len(o.Problems) == 0 {
		r.record(CheckPayload, fail("operation payload is malformed"))
	}
	for _, p := range o.Problems {
		r.record(CheckPayload, fail("%s", p))
	}
	return r.finish()
}

func (e *Engine) gates(r *Report, x *ExerciseState, p *PeriodState, withPeriod bool) {
	if x != nil {
		r.record(CheckExerciseOpen, e.ValidateExerciseOpen(x))
	} else {
		r.skip(CheckExerciseOpen)
	}
	if !withPeriod {
		return
	}
	if p != nil {
		r.record(CheckPeriodOpen, e.ValidatePeriodOpen(p))
	} else {
		r.skip(CheckPeriodOpen)
	}
}

func (e *Engine) validateExpenseMoment(o ExpenseMoment) Report {
	r := newReport(o.Kind())
	e.gates(r, o.Exercise, o.Period, true)

	if o.Moment != "" && o.Line != nil {
		r.record(CheckMomentSequence, e.ValidateMomentSequence(o.Moment, o.Line))
	} else {
		r.skip(CheckMomentSequence)
	}

	if check, validate, ok := ceilingFor(o.Moment); ok {
		if o.Amount != nil && o.Line != nil {
			r.record(check, validate(*o.Amount, o.Line).Result)
		} else {
			r.skip(check)
		}
	}
	return r.finish()
}

func (e *Engine) validateRevenueMoment(o RevenueMoment) Report {
	r := newReport(o.Kind())
	e.gates(r, o.Exercise, o.Period, true)

	if o.Moment != "" && o.Concept != nil {
		r.record(CheckMomentSequence, e.ValidateRevenueMomentSequence(o.Moment, o.Concept))
	} else {
		r.skip(CheckMomentSequence)
	}
	return r.finish()
}

func (e *Engine) validateJournalEntry(o JournalEntry) Report {
	r := newReport(o.Kind())
	e.gates(r, o.Exercise, o.Period, true)

	if o.Movements != nil {
		r.record(CheckMinimumMovements, ValidateMinimumMovements(o.Movements))
		r.record(CheckBalance, ValidateDoubleEntry(o.Movements).Result)
	} else {
		r.skip(CheckMinimumMovements)
		r.skip(CheckBalance)
	}
	return r.finish()
}

func (e *Engine) validateAssetRegistration(o AssetRegistration) Report {
	r := newReport(o.Kind())
	e.gates(r, o.Exercise, nil, false)

	if o.AcquisitionDate != nil {
		r.record(CheckRegistrationDeadline, e.ValidateAssetRegistrationDeadline(*o.AcquisitionDate).Result)
	} else {
		r.skip(CheckRegistrationDeadline)
	}
	return r.finish()
}

func (e *Engine) validateIdentifier(o IdentifierCheck) Report {
	var (
		check    Check
		validate func(string) Result
	)
	switch o.Scheme {
	case SchemeRFC:
		check, validate = CheckRFC, ValidateRFC
	case SchemeCURP:
		check, validate = CheckCURP, ValidateCURP
	case SchemeCLABE:
		check, validate = CheckCLABE, ValidateCLABE
	default:
		return unrecognized(o.Kind())
	}

	r := newReport(o.Kind())
	if o.Value != nil {
		r.record(check, validate(*o.Value))
	} else {
		r.skip(check)
	}
	return r.finish()
}

// Deref returns the value form of op, so callers may pass either
// ExpenseMoment or *ExpenseMoment. A nil pointer yields nil.
func Deref(op Operation) Operation {
	switch o := op.(type) {
	case *ExpenseMoment:
		if o != nil {
			return *o
		}
	case *RevenueMoment:
		if o != nil {
			return *o
		}
	case *JournalEntry:
		if o != nil {
			return *o
		}
	case *AssetRegistration:
		if o != nil {
			return *o
		}
	case *IdentifierCheck:
		if o != nil {
			return *o
		}
	case *UnrecognizedOperation:
		if o != nil {
			return *o
		}
	case *InvalidPayload:
		if o != nil {
			return *o
		}
	default:
		return op
	}
	return nil
}

// CeilingCheck reports which ceiling check guards registration of m.
func CeilingCheck(m budget.Moment) (Check, bool) {
	check, _, ok := ceilingFor(m)
	return check, ok
}

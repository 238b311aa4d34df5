package validation

import (
	"github.com/shopspring/decimal"

	"govledger/internal/budget"
	strs "govledger/pkg/platform/strings"
)

// OperationKind names a kind of operation the dispatcher understands.
type OperationKind string

const (
	KindExpenseMoment     OperationKind = "expense-moment"
	KindRevenueMoment     OperationKind = "revenue-moment"
	KindJournalEntry      OperationKind = "journal-entry"
	KindAssetRegistration OperationKind = "asset-registration"
	KindIdentifierRFC     OperationKind = "identifier-rfc"
	KindIdentifierCURP    OperationKind = "identifier-curp"
	KindIdentifierCLABE   OperationKind = "identifier-clabe"
)

// Kinds lists every recognized operation kind.
func Kinds() []OperationKind {
	return []OperationKind{
		KindExpenseMoment,
		KindRevenueMoment,
		KindJournalEntry,
		KindAssetRegistration,
		KindIdentifierRFC,
		KindIdentifierCURP,
		KindIdentifierCLABE,
	}
}

// ParseOperationKind folds s and reports whether it names a known kind.
func ParseOperationKind(s string) (OperationKind, bool) {
	k := OperationKind(strs.Fold(s))
	for _, known := range Kinds() {
		if k == known {
			return k, true
		}
	}
	return k, false
}

// Operation is a proposed operation to validate. The set of implementations
// is closed; each carries exactly the context its checks need.
//
// Optional context is expressed as nil (pointer, map or slice). A check whose
// context is nil is skipped and listed in Report.Skipped rather than failed.
type Operation interface {
	Kind() OperationKind
	isOperation()
}

// ExpenseMoment registers an amount against an expense moment of a budget line.
type ExpenseMoment struct {
	Exercise *ExerciseState
	Period   *PeriodState
	Moment   budget.Moment
	Line     budget.MomentAmounts
	Amount   *decimal.Decimal
}

// RevenueMoment registers an amount against a revenue moment of a concept.
type RevenueMoment struct {
	Exercise *ExerciseState
	Period   *PeriodState
	Moment   budget.Moment
	Concept  budget.MomentAmounts
}

// JournalEntry posts a set of movements.
type JournalEntry struct {
	Exercise  *ExerciseState
	Period    *PeriodState
	Movements []Movement
}

// AssetRegistration records an acquired asset in the inventory.
type AssetRegistration struct {
	Exercise        *ExerciseState
	AcquisitionDate *string
}

// IdentifierScheme selects an identifier validator.
type IdentifierScheme string

const (
	SchemeRFC   IdentifierScheme = "rfc"
	SchemeCURP  IdentifierScheme = "curp"
	SchemeCLABE IdentifierScheme = "clabe"
)

// IdentifierCheck validates a fiscal or banking identifier.
type IdentifierCheck struct {
	Scheme IdentifierScheme
	Value  *string
}

// UnrecognizedOperation carries a kind the dispatcher does not know. It
// always validates as invalid.
type UnrecognizedOperation struct {
	Name string
}

// InvalidPayload stands for an operation whose raw payload could not be
// turned into typed context, e.g. an amount that is not a number. It always
// validates as invalid and reports every problem found while decoding.
type InvalidPayload struct {
	Target   OperationKind
	Problems []string
}

func (ExpenseMoment) Kind() OperationKind     { return KindExpenseMoment }
func (RevenueMoment) Kind() OperationKind     { return KindRevenueMoment }
func (JournalEntry) Kind() OperationKind      { return KindJournalEntry }
func (AssetRegistration) Kind() OperationKind { return KindAssetRegistration }
func (u UnrecognizedOperation) Kind() OperationKind {
	return OperationKind(u.Name)
}

func (c IdentifierCheck) Kind() OperationKind {
	return OperationKind("identifier-" + string(c.Scheme))
}

func (p InvalidPayload) Kind() OperationKind { return p.Target }

func (ExpenseMoment) isOperation()         {}
func (RevenueMoment) isOperation()         {}
func (JournalEntry) isOperation()          {}
func (AssetRegistration) isOperation()     {}
func (IdentifierCheck) isOperation()       {}
func (UnrecognizedOperation) isOperation() {}
func (InvalidPayload) isOperation()        {}

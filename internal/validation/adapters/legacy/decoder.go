// Package legacy turns the loosely shaped {kind, payload} envelopes sent by
// the accounting portal into typed validation operations.
//
// The portal stores moment amounts either nested under "totales" or as flat
// fields, names them in Spanish or English, and sends numbers as JSON
// numbers or strings. All of that is resolved here so the engine only ever
// sees budget.MomentAmounts.
package legacy

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"govledger/internal/budget"
	"govledger/internal/validation"
	dErrors "govledger/pkg/domain-errors"
	strs "govledger/pkg/platform/strings"
)

// Field names accepted for each piece of context, in lookup order.
var (
	exerciseNames  = []string{"ejercicio", "exercise"}
	periodNames    = []string{"periodo", "period"}
	statusNames    = []string{"estado", "status", "estatus"}
	yearNames      = []string{"anio", "año", "year"}
	labelNames     = []string{"nombre", "label", "mes"}
	momentNames    = []string{"momento", "moment"}
	lineNames      = []string{"partida", "line"}
	conceptNames   = []string{"concepto", "concept"}
	amountNames    = []string{"monto", "amount", "importe"}
	totalsNames    = []string{"totales", "totals"}
	movementNames  = []string{"movimientos", "movements"}
	typeNames      = []string{"tipo", "type", "kind"}
	acquiredNames  = []string{"fecha_adquisicion", "acquisition_date"}
	fallbackValues = []string{"valor", "value"}
)

var movementKinds = map[string]validation.MovementKind{
	"cargo":  validation.Debit,
	"debe":   validation.Debit,
	"debit":  validation.Debit,
	"abono":  validation.Credit,
	"haber":  validation.Credit,
	"credit": validation.Credit,
}

// Envelope is one operation as the portal sends it.
type Envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Decoder resolves legacy field names through a budget.Catalog.
type Decoder struct {
	catalog *budget.Catalog
}

// NewDecoder returns a Decoder over catalog. A nil catalog selects the
// built-in one.
func NewDecoder(catalog *budget.Catalog) *Decoder {
	if catalog == nil {
		catalog = budget.DefaultCatalog()
	}
	return &Decoder{catalog: catalog}
}

// Decode builds the operation for kind from payload.
//
// Unknown kinds decode to validation.UnrecognizedOperation. Values that are
// present but unusable, such as an amount that is not a number, decode to
// validation.InvalidPayload listing every problem. An error is returned only
// when payload is not a JSON object.
func (d *Decoder) Decode(kind string, payload json.RawMessage) (validation.Operation, error) {
	k, ok := validation.ParseOperationKind(kind)
	if !ok {
		return validation.UnrecognizedOperation{Name: kind}, nil
	}
	f, err := parseObject(payload)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("payload for %s", k))
	}

	p := &problems{}
	var op validation.Operation
	switch k {
	case validation.KindExpenseMoment:
		op = d.expenseMoment(f, p)
	case validation.KindRevenueMoment:
		op = d.revenueMoment(f, p)
	case validation.KindJournalEntry:
		op = d.journalEntry(f, p)
	case validation.KindAssetRegistration:
		op = d.assetRegistration(f, p)
	case validation.KindIdentifierRFC:
		op = identifier(f, validation.SchemeRFC)
	case validation.KindIdentifierCURP:
		op = identifier(f, validation.SchemeCURP)
	case validation.KindIdentifierCLABE:
		op = identifier(f, validation.SchemeCLABE)
	}

	if len(p.list) > 0 {
		return validation.InvalidPayload{Target: k, Problems: p.list}, nil
	}
	return op, nil
}

// DecodeEnvelope decodes a single {kind, payload} object.
func (d *Decoder) DecodeEnvelope(data []byte) (validation.Operation, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "decode envelope")
	}
	return d.Decode(env.Kind, env.Payload)
}

// DecodeAll decodes either a JSON array of envelopes or a single envelope.
func (d *Decoder) DecodeAll(data []byte) ([]validation.Operation, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		op, err := d.DecodeEnvelope(trimmed)
		if err != nil {
			return nil, err
		}
		return []validation.Operation{op}, nil
	}

	var envs []Envelope
	if err := json.Unmarshal(trimmed, &envs); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "decode envelopes")
	}
	ops := make([]validation.Operation, 0, len(envs))
	for i, env := range envs {
		op, err := d.Decode(env.Kind, env.Payload)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

type problems struct {
	list []string
}

func (p *problems) add(format string, args ...any) {
	p.list = append(p.list, fmt.Sprintf(format, args...))
}

func (d *Decoder) expenseMoment(f fields, p *problems) validation.Operation {
	op := validation.ExpenseMoment{
		Exercise: exercise(f, p),
		Period:   period(f, p),
		Moment:   d.moment(f),
		Line:     d.amounts(f, lineNames, p),
	}
	if raw, name, ok := f.get(amountNames...); ok {
		amount, err := parseAmount(raw)
		if err != nil {
			p.add("malformed amount for %s", name)
		} else {
			op.Amount = &amount
		}
	}
	return op
}

func (d *Decoder) revenueMoment(f fields, p *problems) validation.Operation {
	return validation.RevenueMoment{
		Exercise: exercise(f, p),
		Period:   period(f, p),
		Moment:   d.moment(f),
		Concept:  d.amounts(f, conceptNames, p),
	}
}

func (d *Decoder) journalEntry(f fields, p *problems) validation.Operation {
	op := validation.JournalEntry{
		Exercise: exercise(f, p),
		Period:   period(f, p),
	}
	raw, name, ok := f.get(movementNames...)
	if !ok {
		return op
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		p.add("%s must be a list of movements", name)
		return op
	}

	op.Movements = make([]validation.Movement, 0, len(items))
	for i, item := range items {
		mf, err := parseObject(item)
		if err != nil {
			p.add("%s[%d] must be an object", name, i)
			continue
		}
		var mv validation.Movement
		kindText, _, _ := mf.text(typeNames...)
		kind, known := movementKinds[strs.Fold(kindText)]
		if !known {
			p.add("%s[%d] has unknown movement type %q", name, i, kindText)
		}
		mv.Kind = kind

		amountRaw, amountName, present := mf.get(amountNames...)
		if !present {
			p.add("%s[%d] has no amount", name, i)
		} else if amount, err := parseAmount(amountRaw); err != nil {
			p.add("malformed amount for %s[%d].%s", name, i, amountName)
		} else {
			mv.Amount = amount
		}
		op.Movements = append(op.Movements, mv)
	}
	return op
}

func (d *Decoder) assetRegistration(f fields, p *problems) validation.Operation {
	op := validation.AssetRegistration{Exercise: exercise(f, p)}
	if date, _, ok := f.text(acquiredNames...); ok {
		op.AcquisitionDate = &date
	}
	return op
}

func identifier(f fields, scheme validation.IdentifierScheme) validation.Operation {
	op := validation.IdentifierCheck{Scheme: scheme}
	names := append([]string{string(scheme)}, fallbackValues...)
	if v, _, ok := f.text(names...); ok {
		op.Value = &v
	}
	return op
}

// moment resolves the moment name through the catalog aliases. A name the
// catalog does not know is passed through so the sequencer reports it.
func (d *Decoder) moment(f fields) budget.Moment {
	name, _, ok := f.text(momentNames...)
	if !ok {
		return ""
	}
	if m, ok := d.catalog.Resolve(name); ok {
		return m
	}
	return budget.Moment(strs.Fold(name))
}

type candidate struct {
	value decimal.Decimal
	valid bool
	name  string
}

// amounts reads the moment amounts of the object found under names. Amounts
// nested under "totales" win over flat fields when they are numeric. A
// moment whose every spelling is malformed is reported as a problem.
func (d *Decoder) amounts(f fields, names []string, p *problems) budget.MomentAmounts {
	obj, name, ok, err := f.object(names...)
	if !ok {
		return nil
	}
	if err != nil {
		p.add("%s must be an object", name)
		return nil
	}

	nested := map[budget.Moment]candidate{}
	if totals, totalsName, ok, err := obj.object(totalsNames...); ok {
		if err != nil {
			p.add("%s.%s must be an object", name, totalsName)
		} else {
			d.collect(totals, nested)
		}
	}
	flat := map[budget.Moment]candidate{}
	d.collect(obj, flat)

	out := budget.MomentAmounts{}
	for _, seq := range []budget.Sequence{d.catalog.Expense(), d.catalog.Revenue()} {
		for _, m := range seq.Keys() {
			if _, done := out[m]; done {
				continue
			}
			n, hasNested := nested[m]
			fl, hasFlat := flat[m]
			switch {
			case hasNested && n.valid:
				out[m] = n.value
			case hasFlat && fl.valid:
				out[m] = fl.value
			case hasNested:
				p.add("malformed amount for %s.%s", name, n.name)
			case hasFlat:
				p.add("malformed amount for %s.%s", name, fl.name)
			}
		}
	}
	return out
}

func (d *Decoder) collect(f fields, into map[budget.Moment]candidate) {
	for _, key := range f.order {
		m, ok := d.catalog.Resolve(key)
		if !ok {
			continue
		}
		if prev, seen := into[m]; seen && prev.valid {
			continue
		}
		v, err := parseAmount(f.values[key])
		into[m] = candidate{value: v, valid: err == nil, name: f.names[key]}
	}
}

func exercise(f fields, p *problems) *validation.ExerciseState {
	raw, name, ok := f.get(exerciseNames...)
	if !ok {
		return nil
	}
	var status string
	if err := json.Unmarshal(raw, &status); err == nil {
		return &validation.ExerciseState{Status: status}
	}
	obj, err := parseObject(raw)
	if err != nil {
		p.add("%s must be an object or a status", name)
		return nil
	}
	x := &validation.ExerciseState{}
	x.Status, _, _ = obj.text(statusNames...)
	if yearRaw, yearName, ok := obj.get(yearNames...); ok {
		year, err := parseInt(yearRaw)
		if err != nil {
			p.add("malformed year for %s.%s", name, yearName)
		}
		x.Year = year
	}
	return x
}

func period(f fields, p *problems) *validation.PeriodState {
	raw, name, ok := f.get(periodNames...)
	if !ok {
		return nil
	}
	var status string
	if err := json.Unmarshal(raw, &status); err == nil {
		return &validation.PeriodState{Status: status}
	}
	obj, err := parseObject(raw)
	if err != nil {
		p.add("%s must be an object or a status", name)
		return nil
	}
	ps := &validation.PeriodState{}
	ps.Status, _, _ = obj.text(statusNames...)
	ps.Label, _, _ = obj.text(labelNames...)
	return ps
}

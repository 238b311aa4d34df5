package budget

// Moment names one stage of budget execution ("momento contable").
type Moment string

// Expense moments, in canonical order.
const (
	Approved  Moment = "approved"
	Modified  Moment = "modified"
	Committed Moment = "committed"
	Accrued   Moment = "accrued"
	Executed  Moment = "executed"
	Paid      Moment = "paid"
)

// Revenue moments not shared with the expense sequence.
const (
	Estimated Moment = "estimated"
	Collected Moment = "collected"
)

func (m Moment) String() string {
	return string(m)
}

// MomentDef describes one position of a Sequence: the key the engine works
// with, the label shown to users and the legacy field names that map to it.
type MomentDef struct {
	Key     Moment   `yaml:"key"`
	Label   string   `yaml:"label"`
	Aliases []string `yaml:"aliases"`
}

// Sequence is an ordered list of moments. A moment may only be registered
// after every moment before it.
type Sequence []MomentDef

// Index returns the position of m, or false when m is not part of the sequence.
func (s Sequence) Index(m Moment) (int, bool) {
	for i, def := range s {
		if def.Key == m {
			return i, true
		}
	}
	return -1, false
}

// Keys returns the moments in order.
func (s Sequence) Keys() []Moment {
	keys := make([]Moment, len(s))
	for i, def := range s {
		keys[i] = def.Key
	}
	return keys
}

// Label returns the display label of m, falling back to its key.
func (s Sequence) Label(m Moment) string {
	if i, ok := s.Index(m); ok && s[i].Label != "" {
		return s[i].Label
	}
	return string(m)
}

// Predecessors returns the moments that must be recorded before m.
func (s Sequence) Predecessors(m Moment) []Moment {
	i, ok := s.Index(m)
	if !ok {
		return nil
	}
	return s[:i].Keys()
}

// DefaultExpenseSequence is approved → modified → committed → accrued →
// executed → paid.
func DefaultExpenseSequence() Sequence {
	return Sequence{
		{Key: Approved, Label: "Aprobado", Aliases: []string{"aprobado"}},
		{Key: Modified, Label: "Modificado", Aliases: []string{"modificado"}},
		{Key: Committed, Label: "Comprometido", Aliases: []string{"comprometido"}},
		{Key: Accrued, Label: "Devengado", Aliases: []string{"devengado"}},
		{Key: Executed, Label: "Ejercido", Aliases: []string{"ejercido"}},
		{Key: Paid, Label: "Pagado", Aliases: []string{"pagado"}},
	}
}

// DefaultRevenueSequence is estimated → modified → accrued → collected.
func DefaultRevenueSequence() Sequence {
	return Sequence{
		{Key: Estimated, Label: "Estimado", Aliases: []string{"estimado"}},
		{Key: Modified, Label: "Modificado", Aliases: []string{"modificado"}},
		{Key: Accrued, Label: "Devengado", Aliases: []string{"devengado"}},
		{Key: Collected, Label: "Recaudado", Aliases: []string{"recaudado"}},
	}
}

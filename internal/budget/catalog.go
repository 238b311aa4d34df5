package budget

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	dErrors "govledger/pkg/domain-errors"
	strs "govledger/pkg/platform/strings"
)

// DefaultRegistrationDeadlineDays is the number of days an acquired asset
// may wait before it must be registered in the inventory.
const DefaultRegistrationDeadlineDays = 30

// CatalogFile is the YAML shape of a catalog.
type CatalogFile struct {
	Expense                  Sequence `yaml:"expense"`
	Revenue                  Sequence `yaml:"revenue"`
	OpenPeriodStatuses       []string `yaml:"open_period_statuses"`
	OpenExerciseStatuses     []string `yaml:"open_exercise_statuses"`
	// RegistrationDeadlineDays is optional; when absent the built-in window
	// applies. A present value must be positive.
	RegistrationDeadlineDays *int `yaml:"registration_deadline_days,omitempty"`
}

// Catalog is the shared configuration the engine is built from: the canonical
// moment orders, the statuses that count as open and the asset registration
// window. A Catalog is immutable once built and safe for concurrent use.
//
// Invariants:
//   - both sequences are non-empty and contain no duplicate keys
//   - every alias resolves to exactly one moment key
//   - the deadline is a positive number of days
type Catalog struct {
	expense      Sequence
	revenue      Sequence
	openPeriod   strs.Set
	openExercise strs.Set
	deadlineDays int
	aliases      map[string]Moment
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultCatalogFile())
	if err != nil {
		// The built-in values are constants; failing here is a programming error.
		panic(err)
	}
	return c
}

// DefaultCatalogFile returns the built-in catalog values.
func DefaultCatalogFile() CatalogFile {
	return CatalogFile{
		Expense:                  DefaultExpenseSequence(),
		Revenue:                  DefaultRevenueSequence(),
		OpenPeriodStatuses:       []string{"open", "active"},
		OpenExerciseStatuses:     []string{"open", "active", "in-force"},
		RegistrationDeadlineDays: intPtr(DefaultRegistrationDeadlineDays),
	}
}

func intPtr(v int) *int { return &v }

// NewCatalog validates f and builds a Catalog. Empty sections of f fall back
// to the built-in defaults.
func NewCatalog(f CatalogFile) (*Catalog, error) {
	def := DefaultCatalogFile()
	if len(f.Expense) == 0 {
		f.Expense = def.Expense
	}
	if len(f.Revenue) == 0 {
		f.Revenue = def.Revenue
	}
	if len(f.OpenPeriodStatuses) == 0 {
		f.OpenPeriodStatuses = def.OpenPeriodStatuses
	}
	if len(f.OpenExerciseStatuses) == 0 {
		f.OpenExerciseStatuses = def.OpenExerciseStatuses
	}
	deadline := DefaultRegistrationDeadlineDays
	if f.RegistrationDeadlineDays != nil {
		deadline = *f.RegistrationDeadlineDays
	}
	if deadline <= 0 {
		return nil, dErrors.Newf(dErrors.CodeInvalidConfig,
			"registration_deadline_days must be positive, got %d", deadline)
	}

	c := &Catalog{
		expense:      cloneSequence(f.Expense),
		revenue:      cloneSequence(f.Revenue),
		openPeriod:   strs.NewSet(f.OpenPeriodStatuses...),
		openExercise: strs.NewSet(f.OpenExerciseStatuses...),
		deadlineDays: deadline,
		aliases:      make(map[string]Moment),
	}

	if err := checkSequence("expense", c.expense); err != nil {
		return nil, err
	}
	if err := checkSequence("revenue", c.revenue); err != nil {
		return nil, err
	}
	if c.openPeriod.Len() == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidConfig, "open_period_statuses has no usable entries")
	}
	if c.openExercise.Len() == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidConfig, "open_exercise_statuses has no usable entries")
	}

	for _, seq := range []Sequence{c.expense, c.revenue} {
		for _, def := range seq {
			names := append([]string{string(def.Key)}, def.Aliases...)
			for _, name := range strs.DedupeFold(names) {
				if prev, ok := c.aliases[name]; ok && prev != def.Key {
					return nil, dErrors.Newf(dErrors.CodeInvalidConfig,
						"alias %q maps to both %q and %q", name, prev, def.Key)
				}
				c.aliases[name] = def.Key
			}
		}
	}

	return c, nil
}

// ParseCatalog decodes YAML catalog data. Unknown fields are rejected and an
// empty document yields the built-in catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f CatalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidConfig, "decode catalog")
	}
	return NewCatalog(f)
}

// LoadCatalog reads a catalog from a YAML file. An empty path yields the
// built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "catalog file "+path)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "read catalog file "+path)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// File returns the effective catalog values, suitable for writing back as YAML.
func (c *Catalog) File() CatalogFile {
	return CatalogFile{
		Expense:                  c.Expense(),
		Revenue:                  c.Revenue(),
		OpenPeriodStatuses:       c.OpenPeriodStatuses(),
		OpenExerciseStatuses:     c.OpenExerciseStatuses(),
		RegistrationDeadlineDays: intPtr(c.deadlineDays),
	}
}

// Expense returns a copy of the expense sequence.
func (c *Catalog) Expense() Sequence {
	return cloneSequence(c.expense)
}

// Revenue returns a copy of the revenue sequence.
func (c *Catalog) Revenue() Sequence {
	return cloneSequence(c.revenue)
}

// IsOpenPeriodStatus reports whether status marks an accounting period as open.
func (c *Catalog) IsOpenPeriodStatus(status string) bool {
	return c.openPeriod.Has(status)
}

// IsOpenExerciseStatus reports whether status marks a fiscal exercise as open.
func (c *Catalog) IsOpenExerciseStatus(status string) bool {
	return c.openExercise.Has(status)
}

// OpenPeriodStatuses lists the normalised open period statuses.
func (c *Catalog) OpenPeriodStatuses() []string {
	return c.openPeriod.Values()
}

// OpenExerciseStatuses lists the normalised open exercise statuses.
func (c *Catalog) OpenExerciseStatuses() []string {
	return c.openExercise.Values()
}

// RegistrationDeadlineDays returns the asset registration window.
func (c *Catalog) RegistrationDeadlineDays() int {
	return c.deadlineDays
}

// Resolve maps a moment key or legacy alias (e.g. "comprometido") to its
// moment. Matching ignores case and surrounding whitespace.
func (c *Catalog) Resolve(name string) (Moment, bool) {
	m, ok := c.aliases[strs.Fold(name)]
	return m, ok
}

// Names returns every key and alias that resolves to m.
func (c *Catalog) Names(m Moment) []string {
	var names []string
	for name, key := range c.aliases {
		if key == m {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func checkSequence(name string, seq Sequence) error {
	seen := make(map[Moment]struct{}, len(seq))
	for i, def := range seq {
		if def.Key == "" {
			return dErrors.Newf(dErrors.CodeInvalidConfig, "%s sequence: entry %d has no key", name, i)
		}
		if _, dup := seen[def.Key]; dup {
			return dErrors.Newf(dErrors.CodeInvalidConfig, "%s sequence: duplicate moment %q", name, def.Key)
		}
		seen[def.Key] = struct{}{}
	}
	return nil
}

func cloneSequence(seq Sequence) Sequence {
	out := make(Sequence, len(seq))
	for i, def := range seq {
		out[i] = MomentDef{
			Key:     def.Key,
			Label:   def.Label,
			Aliases: append([]string(nil), def.Aliases...),
		}
	}
	return out
}

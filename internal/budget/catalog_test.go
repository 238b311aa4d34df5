package budget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	dErrors "govledger/pkg/domain-errors"
)

type CatalogSuite struct {
	suite.Suite
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) TestDefaultCatalog() {
	c := DefaultCatalog()

	s.Equal([]Moment{Approved, Modified, Committed, Accrued, Executed, Paid}, c.Expense().Keys())
	s.Equal([]Moment{Estimated, Modified, Accrued, Collected}, c.Revenue().Keys())
	s.Equal([]string{"open", "active"}, c.OpenPeriodStatuses())
	s.Equal([]string{"open", "active", "in-force"}, c.OpenExerciseStatuses())
	s.Equal(30, c.RegistrationDeadlineDays())
}

func (s *CatalogSuite) TestResolve() {
	c := DefaultCatalog()

	s.Run("resolves keys and legacy aliases case-insensitively", func() {
		for name, want := range map[string]Moment{
			"approved":      Approved,
			"aprobado":      Approved,
			" Comprometido": Committed,
			"DEVENGADO":     Accrued,
			"recaudado":     Collected,
		} {
			got, ok := c.Resolve(name)
			s.True(ok, name)
			s.Equal(want, got, name)
		}
	})

	s.Run("unknown names do not resolve", func() {
		_, ok := c.Resolve("reservado")
		s.False(ok)
	})

	s.Run("lists names per moment", func() {
		s.Equal([]string{"approved", "aprobado"}, c.Names(Approved))
	})
}

func (s *CatalogSuite) TestReturnedSequencesAreCopies() {
	c := DefaultCatalog()
	seq := c.Expense()
	seq[0].Key = "tampered"

	s.Equal(Approved, c.Expense()[0].Key)
}

func (s *CatalogSuite) TestParseCatalog() {
	s.Run("custom statuses and deadline", func() {
		c, err := ParseCatalog([]byte(`
open_period_statuses: [Abierto, activo]
registration_deadline_days: 45
`))
		s.Require().NoError(err)
		s.True(c.IsOpenPeriodStatus("ABIERTO"))
		s.False(c.IsOpenPeriodStatus("open"))
		s.Equal(45, c.RegistrationDeadlineDays())
		s.Equal(DefaultExpenseSequence().Keys(), c.Expense().Keys())
	})

	s.Run("empty document yields defaults", func() {
		c, err := ParseCatalog(nil)
		s.Require().NoError(err)
		s.Equal(DefaultRevenueSequence().Keys(), c.Revenue().Keys())
	})

	s.Run("rejects unknown fields", func() {
		_, err := ParseCatalog([]byte("moments: []\n"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidConfig))
	})

	s.Run("rejects duplicate moments", func() {
		_, err := ParseCatalog([]byte(`
expense:
  - key: approved
  - key: approved
`))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidConfig))
	})

	s.Run("rejects aliases pointing at two moments", func() {
		_, err := ParseCatalog([]byte(`
expense:
  - key: approved
    aliases: [base]
  - key: modified
    aliases: [base]
`))
		s.Require().Error(err)
		s.Contains(err.Error(), `alias "base"`)
	})

	s.Run("rejects negative deadline", func() {
		_, err := ParseCatalog([]byte("registration_deadline_days: -1\n"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidConfig))
	})

	s.Run("rejects an explicit zero deadline", func() {
		_, err := ParseCatalog([]byte("registration_deadline_days: 0\n"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidConfig))
		s.Contains(err.Error(), "got 0")
	})

	s.Run("absent deadline uses the default", func() {
		c, err := ParseCatalog([]byte("open_period_statuses: [abierto]\n"))
		s.Require().NoError(err)
		s.Equal(DefaultRegistrationDeadlineDays, c.RegistrationDeadlineDays())
	})

	s.Run("rejects status lists that fold to nothing", func() {
		_, err := ParseCatalog([]byte("open_exercise_statuses: ['  ', '']\n"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidConfig))
	})
}

func TestLoadCatalog(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		c, err := LoadCatalog("")
		require.NoError(t, err)
		assert.Equal(t, DefaultExpenseSequence().Keys(), c.Expense().Keys())
	})

	t.Run("missing file is not found", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("loads the shipped catalog", func(t *testing.T) {
		c, err := LoadCatalog(filepath.Join("..", "..", "config", "catalog.yaml"))
		require.NoError(t, err)
		assert.True(t, c.IsOpenExerciseStatus("vigente"))
		assert.Equal(t, "Recaudado", c.Revenue().Label(Collected))
	})

	t.Run("decode errors carry the path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("expense: {"), 0o600))
		_, err := LoadCatalog(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidConfig))
	})
}

func (s *CatalogSuite) TestFileRoundTrip() {
	c := DefaultCatalog()

	data, err := yaml.Marshal(c.File())
	s.Require().NoError(err)

	parsed, err := ParseCatalog(data)
	s.Require().NoError(err)
	s.Equal(c.File(), parsed.File())
}

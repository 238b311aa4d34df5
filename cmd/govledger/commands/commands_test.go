package commands

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govledger/internal/platform/config"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvCatalog,
		config.EnvLogLevel,
		config.EnvLogFormat,
		config.EnvBatchConcurrency,
		config.EnvAuditBuffer,
	} {
		t.Setenv(k, "")
	}
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	isolateEnv(t)
	envFile := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(envFile, nil, 0o600))

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--env-file", envFile}, args...))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCheck(t *testing.T) {
	t.Run("valid RFC", func(t *testing.T) {
		out, _, err := run(t, "", "check", "rfc", "GODE561231GR8")
		require.NoError(t, err)
		assert.Equal(t, "RFC GODE561231GR8 is valid\n", out)
	})

	t.Run("invalid CLABE prints the reason", func(t *testing.T) {
		out, _, err := run(t, "", "check", "clabe", "032180000118359710")
		require.Error(t, err)
		assert.Contains(t, out, "check digit")
	})

	t.Run("requires a value", func(t *testing.T) {
		_, _, err := run(t, "", "check", "curp")
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	ops := filepath.Join(dir, "ops.json")
	metricsOut := filepath.Join(dir, "govledger.prom")
	auditOut := filepath.Join(dir, "audit.jsonl")
	require.NoError(t, os.WriteFile(ops, []byte(`[
		{"kind": "identifier-rfc", "payload": {"rfc": "XAXX010101000"}},
		{"kind": "journal-entry", "payload": {"movimientos": [
			{"tipo": "cargo", "monto": "100"},
			{"tipo": "abono", "monto": "99.99"}
		]}},
		{"kind": "transfer", "payload": {}}
	]`), 0o600))

	out, _, err := run(t, "", "validate", "--file", ops, "--metrics-out", metricsOut, "--audit-out", auditOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 operations are invalid")

	var batch struct {
		RunID   string `json:"run_id"`
		Valid   int    `json:"valid"`
		Invalid int    `json:"invalid"`
		Reports []struct {
			Kind   string   `json:"kind"`
			Valid  bool     `json:"valid"`
			Errors []string `json:"errors"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &batch))
	require.Len(t, batch.Reports, 3)
	assert.NotEmpty(t, batch.RunID)
	assert.True(t, batch.Reports[0].Valid)
	assert.Contains(t, batch.Reports[1].Errors[0], "unbalanced")
	assert.Equal(t, "transfer", batch.Reports[2].Kind)

	metrics, err := os.ReadFile(metricsOut)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `govledger_validation_outcomes_total{kind="journal-entry",outcome="invalid"} 1`)

	f, err := os.Open(auditOut)
	require.NoError(t, err)
	defer f.Close()
	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var event map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		assert.Equal(t, batch.RunID, event["batch_id"])
		lines++
	}
	assert.Equal(t, 4, lines)
}

func TestValidate_AuditTail(t *testing.T) {
	auditOut := filepath.Join(t.TempDir(), "audit.jsonl")
	input := `[
		{"kind": "identifier-rfc", "payload": {"rfc": "XAXX010101000"}},
		{"kind": "identifier-clabe", "payload": {"clabe": "032180000118359719"}}
	]`

	_, _, err := run(t, input, "validate", "-f", "-", "--audit-out", auditOut, "--audit-tail", "1")
	require.NoError(t, err)

	data, err := os.ReadFile(auditOut)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "batch_validated")

	_, _, err = run(t, input, "validate", "-f", "-", "--audit-tail", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit-tail")
}

func TestValidate_Stdin(t *testing.T) {
	out, _, err := run(t, `{"kind": "identifier-curp", "payload": {"curp": "GODE561231HDFRRN09"}}`, "validate", "--file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"valid": 1`)
}

func TestValidate_BadInput(t *testing.T) {
	_, _, err := run(t, `[{"kind": "journal-entry", "payload": 3}]`, "validate", "-f", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation 0")
}

func TestEnvFileMustExist(t *testing.T) {
	_, _, err := run(t, "", "--env-file", filepath.Join(t.TempDir(), "typo.env"), "moments")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo.env")
}

func TestMoments(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		out, _, err := run(t, "", "moments")
		require.NoError(t, err)
		assert.Contains(t, out, "EXPENSE")
		assert.Contains(t, out, "comprometido")
		assert.Contains(t, out, "REVENUE")
		assert.Contains(t, out, "30 days")
	})

	t.Run("yaml with a custom catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("registration_deadline_days: 45\n"), 0o600))

		out, _, err := run(t, "", "--catalog", path, "moments", "--yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "registration_deadline_days: 45")
		assert.Contains(t, out, "key: approved")
	})

	t.Run("missing catalog file", func(t *testing.T) {
		_, _, err := run(t, "", "--catalog", filepath.Join(t.TempDir(), "nope.yaml"), "moments")
		require.Error(t, err)
	})
}

package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	dErrors "govledger/pkg/domain-errors"
)

const (
	EnvCatalog          = "GOVLEDGER_CATALOG"
	EnvLogLevel         = "GOVLEDGER_LOG_LEVEL"
	EnvLogFormat        = "GOVLEDGER_LOG_FORMAT"
	EnvBatchConcurrency = "GOVLEDGER_BATCH_CONCURRENCY"
	EnvAuditBuffer      = "GOVLEDGER_AUDIT_BUFFER"
)

// Config captures process level settings. Everything has a usable default,
// so an empty environment runs with the built-in catalog.
type Config struct {
	// CatalogPath points at a YAML catalog; empty selects the built-in one.
	CatalogPath string
	LogLevel    string
	LogFormat   string
	// BatchConcurrency bounds parallel evaluation in a batch.
	BatchConcurrency int
	// AuditBuffer is the async audit channel size; 0 writes inline.
	AuditBuffer int
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel:         "info",
		LogFormat:        "text",
		BatchConcurrency: 8,
		AuditBuffer:      0,
	}
}

// FromEnv loads dotenv files and then builds a Config from environment
// variables so main stays lean. With no files given the optional ./.env is
// read; files named by the caller must exist. Variables already set in the
// process win over dotenv values.
func FromEnv(envFiles ...string) (Config, error) {
	if err := loadDotEnv(envFiles); err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.CatalogPath = strings.TrimSpace(os.Getenv(EnvCatalog))
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	var err error
	if cfg.BatchConcurrency, err = envInt(EnvBatchConcurrency, cfg.BatchConcurrency); err != nil {
		return Config{}, err
	}
	if cfg.AuditBuffer, err = envInt(EnvAuditBuffer, cfg.AuditBuffer); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, "log level must be one of debug, info, warn, error, got "+strconv.Quote(c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, "log format must be text or json, got "+strconv.Quote(c.LogFormat))
	}
	if c.BatchConcurrency < 1 {
		problems = append(problems, "batch concurrency must be at least 1, got "+strconv.Itoa(c.BatchConcurrency))
	}
	if c.AuditBuffer < 0 {
		problems = append(problems, "audit buffer must not be negative, got "+strconv.Itoa(c.AuditBuffer))
	}
	if len(problems) > 0 {
		return dErrors.New(dErrors.CodeInvalidConfig, "invalid configuration: "+strings.Join(problems, "; "))
	}
	return nil
}

func loadDotEnv(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return dErrors.Wrap(err, dErrors.CodeInvalidConfig, "load .env")
		}
		return nil
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return dErrors.Wrap(err, dErrors.CodeNotFound, "env file "+f)
			}
			return dErrors.Wrap(err, dErrors.CodeInvalidConfig, "load "+f)
		}
	}
	return nil
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInvalidConfig, key+" must be an integer")
	}
	return n, nil
}

package testsupport

import (
	"path/filepath"
	"testing"

	"wordrank/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.Database = filepath.Join(base, "data", "runs.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithPunctuation overrides the tokenizer punctuation set.
func WithPunctuation(punctuation string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tokenizer.Punctuation = punctuation
	}
}

// WithCaseFold overrides case folding.
func WithCaseFold(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tokenizer.CaseFold = &enabled
	}
}

// WithTop sets the default number of top entries to export.
func WithTop(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Report.Top = n
	}
}

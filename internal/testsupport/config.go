package testsupport

import (
	"testing"

	"ttsprep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	cfg *config.Config
}

// NewConfig produces a config whose work directory is a fresh temp
// directory. History is stored inside the work directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkDir = base
	cfgVal.Corpora.Dirs = []string{"corpus-a", "corpus-b"}
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{cfg: &cfgVal}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCorpora overrides the corpus list.
func WithCorpora(dirs ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Corpora.Dirs = append([]string(nil), dirs...)
	}
}

// WithWorkers sets the number of parallel audio conversions.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Audio.Workers = n
	}
}

// WithoutHistory disables the run ledger.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

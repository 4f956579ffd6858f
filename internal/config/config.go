package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains work directory and artifact locations. Relative entries
// other than WorkDir are resolved against WorkDir.
type Paths struct {
	WorkDir       string   `toml:"work_dir"`
	SelectionFile string   `toml:"selection_file"`
	WavsDir       string   `toml:"wavs_dir"`
	FeatureDir    string   `toml:"feature_dir"`
	StaleDirs     []string `toml:"stale_dirs"`
}

// Corpora lists the corpus directories merged into the global splits, in
// merge order.
type Corpora struct {
	Dirs []string `toml:"dirs"`
}

// Audio contains configuration for the audio materializer.
type Audio struct {
	SampleRate   int    `toml:"sample_rate"`
	Workers      int    `toml:"workers"`
	Decoder      string `toml:"decoder"`
	FFmpegBinary string `toml:"ffmpeg_binary"`
}

// Filter contains training-set filter options.
type Filter struct {
	// Dedupe drops repeated (wav, record id, text) entries. Off by default:
	// records present in both train/val and all are processed twice.
	Dedupe bool `toml:"dedupe"`
}

// History contains configuration for the run ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for ttsprep.
//
// Configuration sections by subsystem:
//   - Paths: work directory, selection file, output directories
//   - Corpora: corpus directories in merge order
//   - Audio: target sample rate, worker count, decoder backend
//   - Filter: training-set filter options
//   - History: SQLite run ledger
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Corpora Corpora `toml:"corpora"`
	Audio   Audio   `toml:"audio"`
	Filter  Filter  `toml:"filter"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ttsprep/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ttsprep.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// WorkPath resolves name against the work directory unless it is already
// absolute.
func (c *Config) WorkPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Paths.WorkDir, name)
}

// SelectionPath returns the absolute path of the voice/language selection file.
func (c *Config) SelectionPath() string {
	return c.WorkPath(c.Paths.SelectionFile)
}

// WavsPath returns the absolute path of the materialized audio directory.
func (c *Config) WavsPath() string {
	return c.WorkPath(c.Paths.WavsDir)
}

// HistoryPath returns the absolute path of the run history database.
func (c *Config) HistoryPath() string {
	return c.WorkPath(c.History.Path)
}

// EnsureDirectories creates the work directory and the history directory
// when history is enabled.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.WorkDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.WorkDir, err)
	}
	if c.History.Enabled {
		dir := filepath.Dir(c.HistoryPath())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

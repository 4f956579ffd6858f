package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCorpora(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCorpora() error {
	if len(c.Corpora.Dirs) == 0 {
		return errors.New("corpora.dirs must list at least one corpus directory")
	}
	seen := make(map[string]struct{}, len(c.Corpora.Dirs))
	for _, dir := range c.Corpora.Dirs {
		if path.IsAbs(dir) {
			return fmt.Errorf("corpora.dirs: %q must be relative to paths.work_dir", dir)
		}
		if dir == "." || dir == ".." || strings.HasPrefix(dir, "../") {
			return fmt.Errorf("corpora.dirs: %q must name a directory inside paths.work_dir", dir)
		}
		if strings.Contains(dir, "|") {
			return fmt.Errorf("corpora.dirs: %q must not contain the field delimiter", dir)
		}
		if _, ok := seen[dir]; ok {
			return fmt.Errorf("corpora.dirs: %q listed more than once", dir)
		}
		seen[dir] = struct{}{}
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SampleRate < 1000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("audio.sample_rate must be between 1000 and 192000, got %d", c.Audio.SampleRate)
	}
	if c.Audio.Workers < 1 {
		return fmt.Errorf("audio.workers must be positive, got %d", c.Audio.Workers)
	}
	switch c.Audio.Decoder {
	case DecoderAuto, DecoderNative, DecoderFFmpeg:
	default:
		return fmt.Errorf("audio.decoder must be one of auto, native, ffmpeg; got %q", c.Audio.Decoder)
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.ContainsAny(c.Paths.FeatureDir, "|") {
		return errors.New("paths.feature_dir must not contain the field delimiter")
	}
	if err := c.checkDisposable(c.Paths.WavsDir); err != nil {
		return fmt.Errorf("paths.wavs_dir: %w", err)
	}
	for _, dir := range c.Paths.StaleDirs {
		if err := c.checkDisposable(dir); err != nil {
			return fmt.Errorf("paths.stale_dirs: %w", err)
		}
	}
	return nil
}

// checkDisposable rejects directories a run must not empty: the work
// directory, anything outside it, and anything overlapping a corpus or the
// run's own state files.
func (c *Config) checkDisposable(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("must not be empty")
	}
	root, err := filepath.Abs(c.Paths.WorkDir)
	if err != nil {
		return fmt.Errorf("resolve paths.work_dir: %w", err)
	}
	target, err := filepath.Abs(c.WorkPath(filepath.FromSlash(dir)))
	if err != nil {
		return fmt.Errorf("resolve %q: %w", dir, err)
	}
	rel, ok := within(root, target)
	switch {
	case !ok:
		return fmt.Errorf("%q must name a directory inside paths.work_dir", dir)
	case rel == ".":
		return fmt.Errorf("%q would remove the work directory", dir)
	}

	for _, corpus := range c.Corpora.Dirs {
		corpusPath := filepath.Join(root, filepath.FromSlash(corpus))
		if _, inside := within(target, corpusPath); inside {
			return fmt.Errorf("%q would remove corpus %q", dir, corpus)
		}
		if _, inside := within(corpusPath, target); inside {
			return fmt.Errorf("%q lies inside corpus %q", dir, corpus)
		}
	}
	for _, keep := range []string{c.SelectionPath(), c.HistoryPath()} {
		keepPath, err := filepath.Abs(keep)
		if err != nil {
			continue
		}
		if _, inside := within(target, keepPath); inside {
			return fmt.Errorf("%q would remove %s", dir, keepPath)
		}
	}
	return nil
}

// within reports whether path equals or lies below base, and the relative
// path between them.
func within(base, target string) (string, bool) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return rel, false
	}
	return rel, true
}

package config

import (
	"fmt"
	"path"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCorpora()
	c.normalizeAudio()
	c.normalizeHistory()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	c.Paths.SelectionFile = strings.TrimSpace(c.Paths.SelectionFile)
	if c.Paths.SelectionFile == "" {
		c.Paths.SelectionFile = defaultSelectionFile
	}
	c.Paths.WavsDir = strings.TrimSpace(c.Paths.WavsDir)
	if c.Paths.WavsDir == "" {
		c.Paths.WavsDir = defaultWavsDir
	}
	c.Paths.FeatureDir = strings.TrimSpace(c.Paths.FeatureDir)
	if c.Paths.FeatureDir == "" {
		c.Paths.FeatureDir = defaultFeatureDir
	}
	stale := c.Paths.StaleDirs[:0]
	for _, dir := range c.Paths.StaleDirs {
		if dir = strings.TrimSpace(dir); dir != "" {
			stale = append(stale, dir)
		}
	}
	c.Paths.StaleDirs = stale
	return nil
}

// normalizeCorpora converts corpus entries to clean slash paths. The corpus
// path doubles as the qualification prefix written into record wav paths,
// so it must not depend on the host separator.
func (c *Config) normalizeCorpora() {
	dirs := make([]string, 0, len(c.Corpora.Dirs))
	for _, dir := range c.Corpora.Dirs {
		dir = strings.TrimSpace(strings.ReplaceAll(dir, "\\", "/"))
		if dir == "" {
			continue
		}
		dirs = append(dirs, path.Clean(dir))
	}
	c.Corpora.Dirs = dirs
}

func (c *Config) normalizeAudio() {
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = defaultSampleRate
	}
	if c.Audio.Workers == 0 {
		c.Audio.Workers = defaultWorkers
	}
	c.Audio.Decoder = strings.ToLower(strings.TrimSpace(c.Audio.Decoder))
	if c.Audio.Decoder == "" {
		c.Audio.Decoder = defaultDecoder
	}
	c.Audio.FFmpegBinary = strings.TrimSpace(c.Audio.FFmpegBinary)
	if c.Audio.FFmpegBinary == "" {
		c.Audio.FFmpegBinary = defaultFFmpegBinary
	}
}

func (c *Config) normalizeHistory() {
	c.History.Path = strings.TrimSpace(c.History.Path)
	if c.History.Path == "" {
		c.History.Path = defaultHistoryPath
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

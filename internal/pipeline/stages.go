package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ttsprep/internal/corpus"
	"ttsprep/internal/fileutil"
	"ttsprep/internal/logging"
	"ttsprep/internal/manifest"
	"ttsprep/internal/materialize"
	"ttsprep/internal/selection"
	"ttsprep/internal/shuffle"
	"ttsprep/internal/trainset"
	"ttsprep/internal/vocab"
)

type stage struct {
	name string
	run  func(ctx context.Context) error
}

// state carries intermediate results between stages of one run.
type state struct {
	runner    *Runner
	summary   *Summary
	selection selection.Selection
	splits    corpus.Splits
	entries   []trainset.Entry
	outputs   []materialize.Output
}

func (s *state) logger(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, logging.NewComponentLogger(s.runner.Logger, "pipeline"))
}

func (s *state) splitFiles() corpus.SplitFiles {
	return corpus.SplitFiles{Dir: s.runner.Config.Paths.WorkDir}
}

func (s *state) loadSelection(ctx context.Context) error {
	path := s.runner.Config.SelectionPath()
	sel, rewritten, err := selection.LoadOrDefault(path)
	if err != nil {
		return err
	}
	if rewritten {
		if err := selection.Save(path, sel); err != nil {
			return err
		}
		s.logger(ctx).Warn("selection file missing or invalid; wrote default selection",
			logging.String("path", path),
			logging.Alert(),
		)
	}
	s.selection = sel
	s.summary.SelectionRewritten = rewritten
	s.logger(ctx).Info("selection loaded",
		logging.Any("voices", sel.Voices),
		logging.Any("languages", sel.Languages),
	)
	return nil
}

func (s *state) resetWorkspace(ctx context.Context) error {
	cfg := s.runner.Config
	if err := s.splitFiles().Remove(); err != nil {
		return err
	}
	for _, dir := range cfg.Paths.StaleDirs {
		target := cfg.WorkPath(filepath.FromSlash(dir))
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("remove %s: %w", target, err)
		}
	}
	s.logger(ctx).Debug("workspace reset", logging.Any("stale_dirs", cfg.Paths.StaleDirs))
	return nil
}

func (s *state) merge(ctx context.Context) error {
	cfg := s.runner.Config
	m := corpus.Merger{
		Root:     cfg.Paths.WorkDir,
		Shuffler: s.runner.Shuffler,
		Sink:     s.splitFiles(),
		Logger:   s.runner.Logger,
	}
	splits, stats, err := m.Merge(ctx, cfg.Corpora.Dirs)
	if err != nil {
		return err
	}
	s.splits = splits
	s.summary.Corpora = stats
	s.summary.AllRecords = len(splits.All)
	s.summary.ValRecords = len(splits.Val)
	s.summary.TrainRecords = len(splits.Train)
	return nil
}

func (s *state) writeVocabulary(ctx context.Context) error {
	chars := vocab.Extract(s.splits.All)
	path := s.runner.Config.WorkPath(vocab.FileName)
	if err := vocab.Write(path, chars); err != nil {
		return err
	}
	s.summary.Characters = len(chars)
	s.logger(ctx).Info("vocabulary written",
		logging.String("path", path),
		logging.Int("characters", len(chars)),
	)
	return nil
}

func (s *state) shuffleGlobal(ctx context.Context) error {
	files := s.splitFiles()
	for _, split := range []corpus.Split{corpus.SplitTrain, corpus.SplitVal} {
		records := s.splits.Get(split)
		shuffle.Shuffle(s.runner.Shuffler, records)
		if err := files.Write(split, records); err != nil {
			return fmt.Errorf("rewrite %s: %w", split.FileName(), err)
		}
	}
	s.logger(ctx).Debug("global splits reshuffled")
	return nil
}

func (s *state) filter(ctx context.Context) error {
	entries := trainset.Select(s.selection, s.splits.Train, s.splits.Val, s.splits.All)
	if s.runner.Config.Filter.Dedupe {
		before := len(entries)
		entries = trainset.Dedupe(entries)
		s.logger(ctx).Info("duplicate entries dropped", logging.Int("dropped", before-len(entries)))
	}
	s.entries = entries
	s.summary.Selected = len(entries)
	if len(entries) == 0 {
		s.logger(ctx).Warn("no records match the selection",
			logging.String("path", s.runner.Config.SelectionPath()),
			logging.Alert(),
		)
	}
	return nil
}

func (s *state) materialize(ctx context.Context) error {
	cfg := s.runner.Config
	outputs, err := materialize.Run(ctx, s.entries, materialize.Options{
		WorkDir:   cfg.Paths.WorkDir,
		OutDir:    cfg.WavsPath(),
		Converter: s.runner.converter(),
		Workers:   cfg.Audio.Workers,
		Logger:    s.runner.Logger,
		Terminal:  s.runner.Terminal,
	})
	if err != nil {
		return err
	}
	s.outputs = outputs
	s.summary.Superseded = materialize.Superseded(outputs)
	s.summary.Materialized = len(outputs) - s.summary.Superseded
	return nil
}

func (s *state) writeManifests(ctx context.Context) error {
	cfg := s.runner.Config
	pairs := manifest.Pairs(s.outputs, filepath.ToSlash(cfg.Paths.WavsDir), filepath.ToSlash(cfg.Paths.FeatureDir))
	if err := manifest.WriteTrainList(cfg.WorkPath(manifest.TrainListFile), pairs); err != nil {
		return err
	}
	if err := manifest.WriteTranscripts(cfg.WorkPath(manifest.TranscriptsFile), s.outputs); err != nil {
		return err
	}
	s.logger(ctx).Info("manifests written", logging.Int("entries", len(s.outputs)))
	return nil
}

func (s *state) writeTranscriptsOnly(ctx context.Context) error {
	cfg := s.runner.Config
	s.outputs = materialize.Plan(cfg.WavsPath(), s.entries)
	s.summary.Superseded = materialize.Superseded(s.outputs)
	if err := manifest.WriteTranscripts(cfg.WorkPath(manifest.TranscriptsFile), s.outputs); err != nil {
		return err
	}
	// A train list from an earlier full run would no longer match the
	// transcripts; wavs/ is left as is for the next full run to reconcile.
	if err := fileutil.RemoveIfExists(cfg.WorkPath(manifest.TrainListFile)); err != nil {
		return fmt.Errorf("remove stale train list: %w", err)
	}
	s.logger(ctx).Info("transcripts written; audio skipped", logging.Int("entries", len(s.outputs)))
	return nil
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"ttsprep/internal/audio"
	"ttsprep/internal/config"
	"ttsprep/internal/corpus"
	"ttsprep/internal/history"
	"ttsprep/internal/logging"
	"ttsprep/internal/shuffle"
)

// LockFile is created in the work directory for the duration of a run.
const LockFile = ".ttsprep.lock"

// ErrLocked indicates another run holds the work directory.
var ErrLocked = errors.New("work directory is locked by another run")

// Mode selects how far a run goes.
type Mode int

const (
	// ModeFull runs every stage.
	ModeFull Mode = iota
	// ModeSkipAudio stops after filtering and writes transcripts only.
	ModeSkipAudio
	// ModeVocab stops after the vocabulary is written.
	ModeVocab
)

// Runner executes pipeline runs for one configuration.
type Runner struct {
	Config   *config.Config
	Logger   *slog.Logger
	Shuffler shuffle.Shuffler
	// Converter defaults to audio.New(Config.Audio, os.Executable()).
	Converter audio.Converter
	// History, when set, receives one row per run.
	History *history.Store
	// Terminal is handed to the materializer for progress display.
	Terminal *os.File
	// Now defaults to time.Now.
	Now func() time.Time
}

// Summary reports what a run produced.
type Summary struct {
	RunID              string
	Mode               Mode
	Corpora            []corpus.Stats
	AllRecords         int
	ValRecords         int
	TrainRecords       int
	Characters         int
	SelectionRewritten bool
	Selected           int
	Materialized       int
	Superseded         int
	Duration           time.Duration
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) converter() audio.Converter {
	if r.Converter != nil {
		return r.Converter
	}
	self, _ := os.Executable()
	return audio.New(r.Config.Audio, self)
}

// Run executes the stages selected by mode.
func (r *Runner) Run(ctx context.Context, mode Mode) (summary Summary, err error) {
	if r.Config == nil {
		return Summary{}, errors.New("pipeline: config is required")
	}
	cfg := r.Config
	if err := cfg.Validate(); err != nil {
		return Summary{}, fmt.Errorf("pipeline: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return Summary{}, err
	}

	lockPath := filepath.Join(cfg.Paths.WorkDir, LockFile)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Summary{}, fmt.Errorf("%w (%s)", ErrLocked, lockPath)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	started := r.now()
	summary = Summary{RunID: uuid.NewString(), Mode: mode}
	ctx = logging.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(r.Logger, "pipeline"))
	logger.Info("run started",
		logging.String("work_dir", cfg.Paths.WorkDir),
		logging.Int("corpora", len(cfg.Corpora.Dirs)),
	)

	defer func() {
		summary.Duration = r.now().Sub(started)
		if err != nil {
			logger.Error("run failed", logging.Error(err), logging.Duration("duration", summary.Duration))
		} else {
			logger.Info("run complete",
				logging.Int("all", summary.AllRecords),
				logging.Int("val", summary.ValRecords),
				logging.Int("train", summary.TrainRecords),
				logging.Int("characters", summary.Characters),
				logging.Int("selected", summary.Selected),
				logging.Int("materialized", summary.Materialized),
				logging.Duration("duration", summary.Duration),
			)
		}
		if recErr := r.record(ctx, summary, started, err); recErr != nil {
			logger.Warn("failed to record run history", logging.Error(recErr))
		}
	}()

	err = r.execute(ctx, mode, &summary)
	return summary, err
}

func (r *Runner) execute(ctx context.Context, mode Mode, summary *Summary) error {
	st := &state{runner: r, summary: summary}

	stages := []stage{
		{"selection", st.loadSelection},
		{"reset", st.resetWorkspace},
		{"merge", st.merge},
		{"vocabulary", st.writeVocabulary},
	}
	if mode != ModeVocab {
		stages = append(stages,
			stage{"shuffle", st.shuffleGlobal},
			stage{"filter", st.filter},
		)
	}
	switch mode {
	case ModeFull:
		stages = append(stages,
			stage{"materialize", st.materialize},
			stage{"manifest", st.writeManifests},
		)
	case ModeSkipAudio:
		stages = append(stages, stage{"manifest", st.writeTranscriptsOnly})
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		stageCtx := logging.WithStage(ctx, s.name)
		if err := s.run(stageCtx); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (r *Runner) record(ctx context.Context, summary Summary, started time.Time, runErr error) error {
	if r.History == nil {
		return nil
	}
	run := history.Run{
		ID:           summary.RunID,
		StartedAt:    started,
		FinishedAt:   started.Add(summary.Duration),
		Status:       history.StatusSucceeded,
		Corpora:      append([]string(nil), r.Config.Corpora.Dirs...),
		AllRecords:   summary.AllRecords,
		TrainRecords: summary.TrainRecords,
		ValRecords:   summary.ValRecords,
		Characters:   summary.Characters,
		Selected:     summary.Selected,
		Materialized: summary.Materialized,
		Superseded:   summary.Superseded,
	}
	if runErr != nil {
		run.Status = history.StatusFailed
		run.Error = runErr.Error()
	}
	// The run context may already be cancelled; the ledger row is still wanted.
	return r.History.Record(context.WithoutCancel(ctx), run)
}

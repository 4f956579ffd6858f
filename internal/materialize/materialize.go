package materialize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"ttsprep/internal/audio"
	"ttsprep/internal/fileutil"
	"ttsprep/internal/logging"
	"ttsprep/internal/trainset"
)

// Options configures a materialization run.
type Options struct {
	// WorkDir anchors relative source paths.
	WorkDir string
	// OutDir is emptied and recreated before conversion.
	OutDir    string
	Converter audio.Converter
	// Workers bounds parallel conversions; values below 1 mean 1.
	Workers int
	Logger  *slog.Logger
	// Terminal receives a progress bar when it is a TTY. Otherwise progress
	// is logged in 10% steps.
	Terminal *os.File
}

// Output is the materialized form of one entry.
type Output struct {
	Entry trainset.Entry
	// Stem is the source base name without its final extension.
	Stem string
	// Path is the written file.
	Path string
	// Superseded is set when a later entry writes the same Path.
	Superseded bool
}

// Stem returns the base name of a slash-separated wav path without its
// final extension.
func Stem(wavPath string) string {
	base := path.Base(filepath.ToSlash(wavPath))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Plan derives the outputs for entries without converting anything.
func Plan(outDir string, entries []trainset.Entry) []Output {
	outputs := make([]Output, len(entries))
	last := make(map[string]int, len(entries))
	for i, e := range entries {
		stem := Stem(e.WavPath)
		outputs[i] = Output{
			Entry: e,
			Stem:  stem,
			Path:  filepath.Join(outDir, stem+".wav"),
		}
		if prev, ok := last[stem]; ok {
			outputs[prev].Superseded = true
		}
		last[stem] = i
	}
	return outputs
}

// Superseded counts outputs overwritten by a later entry.
func Superseded(outputs []Output) int {
	n := 0
	for _, o := range outputs {
		if o.Superseded {
			n++
		}
	}
	return n
}

// Run empties OutDir and converts every entry that is not superseded. A
// superseded entry whose source no surviving entry converts is still
// converted into a scratch directory, so an unreadable source aborts the run
// whether or not its name collides. The returned outputs follow entry order.
// The first conversion error cancels the remaining work.
func Run(ctx context.Context, entries []trainset.Entry, opts Options) ([]Output, error) {
	if opts.Converter == nil {
		return nil, fmt.Errorf("materialize: converter is required")
	}
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "materialize"))

	if err := fileutil.ResetDir(opts.OutDir); err != nil {
		return nil, fmt.Errorf("reset %s: %w", opts.OutDir, err)
	}

	outputs := Plan(opts.OutDir, entries)
	var jobs []job
	written := make(map[string]struct{}, len(outputs))
	for _, o := range outputs {
		if o.Superseded {
			logger.Warn("output name collision; later entry wins",
				logging.String("stem", o.Stem),
				logging.String("source", o.Entry.WavPath),
				logging.String("record_id", o.Entry.RecordID),
				logging.Alert(),
			)
			continue
		}
		src := resolve(opts.WorkDir, o.Entry.WavPath)
		written[src] = struct{}{}
		jobs = append(jobs, job{src: src, dst: o.Path})
	}
	converted := len(jobs)

	var scratch string
	for i, o := range outputs {
		if !o.Superseded {
			continue
		}
		src := resolve(opts.WorkDir, o.Entry.WavPath)
		if _, ok := written[src]; ok {
			continue
		}
		if scratch == "" {
			dir, err := os.MkdirTemp("", "ttsprep-verify-")
			if err != nil {
				return nil, fmt.Errorf("create scratch dir: %w", err)
			}
			scratch = dir
			defer os.RemoveAll(scratch)
		}
		written[src] = struct{}{}
		jobs = append(jobs, job{src: src, dst: filepath.Join(scratch, fmt.Sprintf("%d.wav", i)), scratch: true})
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	progress := newProgress(len(jobs), opts.Terminal, logger)
	defer progress.finish()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := opts.Converter.Convert(gctx, j.src, j.dst); err != nil {
				return fmt.Errorf("convert %s: %w", j.src, err)
			}
			if j.scratch {
				_ = fileutil.RemoveIfExists(j.dst)
			}
			progress.tick()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("audio materialized",
		logging.Int("entries", len(outputs)),
		logging.Int("converted", converted),
		logging.Int("verified", len(jobs)-converted),
		logging.Int("superseded", Superseded(outputs)),
	)
	return outputs, nil
}

// job converts src into dst. Scratch jobs only prove src is decodable.
type job struct {
	src, dst string
	scratch  bool
}

func resolve(workDir, wavPath string) string {
	p := filepath.FromSlash(wavPath)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workDir, p)
}

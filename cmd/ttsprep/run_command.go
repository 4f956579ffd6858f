package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ttsprep/internal/history"
	"ttsprep/internal/pipeline"
	"ttsprep/internal/shuffle"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var skipAudio bool
	var workers int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Merge corpora, extract the vocabulary, filter, convert audio and write manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				if workers < 1 {
					return fmt.Errorf("--workers must be at least 1")
				}
				cfg.Audio.Workers = workers
			}
			mode := pipeline.ModeFull
			if skipAudio {
				mode = pipeline.ModeSkipAudio
			}
			summary, err := executePipeline(cmd, ctx, mode)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, summaryJSON(summary))
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipAudio, "skip-audio", false, "Stop after filtering: write transcripts.txt, drop train.json, leave wavs/ untouched")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel audio conversions (overrides audio.workers)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

func newVocabCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Merge corpora and write json-characters.json only",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := executePipeline(cmd, ctx, pipeline.ModeVocab)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func executePipeline(cmd *cobra.Command, ctx *commandContext, mode pipeline.Mode) (pipeline.Summary, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return pipeline.Summary{}, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return pipeline.Summary{}, err
	}

	runner := &pipeline.Runner{
		Config:   cfg,
		Logger:   logger,
		Shuffler: shuffle.Default(),
		Terminal: terminalFile(cmd.ErrOrStderr()),
	}
	if cfg.History.Enabled {
		store, err := history.Open(cfg)
		if err != nil {
			return pipeline.Summary{}, fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
		runner.History = store
	}
	return runner.Run(cmd.Context(), mode)
}

func printSummary(out io.Writer, summary pipeline.Summary) {
	if len(summary.Corpora) > 0 {
		rows := make([][]string, 0, len(summary.Corpora))
		for _, st := range summary.Corpora {
			rows = append(rows, []string{
				st.Corpus,
				strconv.Itoa(st.All),
				strconv.Itoa(st.Val),
				strconv.Itoa(st.Train),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Corpus", "All", "Val", "Train"},
			rows,
			1, 2, 3,
		))
	}

	rows := [][]string{
		{"Run", summary.RunID},
		{"Records (all/val/train)", fmt.Sprintf("%d/%d/%d", summary.AllRecords, summary.ValRecords, summary.TrainRecords)},
		{"Characters", strconv.Itoa(summary.Characters)},
	}
	if summary.Mode != pipeline.ModeVocab {
		rows = append(rows,
			[]string{"Selection healed", yesNo(summary.SelectionRewritten)},
			[]string{"Selected entries", strconv.Itoa(summary.Selected)},
		)
	}
	if summary.Mode == pipeline.ModeFull {
		rows = append(rows,
			[]string{"Audio files", strconv.Itoa(summary.Materialized)},
			[]string{"Name collisions", strconv.Itoa(summary.Superseded)},
		)
	}
	rows = append(rows, []string{"Duration", summary.Duration.Round(time.Millisecond).String()})
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows))
}

type summaryOutput struct {
	RunID              string         `json:"run_id"`
	Corpora            []corpusOutput `json:"corpora"`
	AllRecords         int            `json:"all_records"`
	ValRecords         int            `json:"val_records"`
	TrainRecords       int            `json:"train_records"`
	Characters         int            `json:"characters"`
	SelectionRewritten bool           `json:"selection_rewritten"`
	Selected           int            `json:"selected"`
	Materialized       int            `json:"materialized"`
	Superseded         int            `json:"superseded"`
	DurationMillis     int64          `json:"duration_ms"`
}

type corpusOutput struct {
	Corpus string `json:"corpus"`
	All    int    `json:"all"`
	Val    int    `json:"val"`
	Train  int    `json:"train"`
}

func summaryJSON(summary pipeline.Summary) summaryOutput {
	corpora := make([]corpusOutput, 0, len(summary.Corpora))
	for _, st := range summary.Corpora {
		corpora = append(corpora, corpusOutput{Corpus: st.Corpus, All: st.All, Val: st.Val, Train: st.Train})
	}
	return summaryOutput{
		RunID:              summary.RunID,
		Corpora:            corpora,
		AllRecords:         summary.AllRecords,
		ValRecords:         summary.ValRecords,
		TrainRecords:       summary.TrainRecords,
		Characters:         summary.Characters,
		SelectionRewritten: summary.SelectionRewritten,
		Selected:           summary.Selected,
		Materialized:       summary.Materialized,
		Superseded:         summary.Superseded,
		DurationMillis:     summary.Duration.Milliseconds(),
	}
}

package corpus

import (
	"context"
	"fmt"
	"log/slog"

	"ttsprep/internal/logging"
	"ttsprep/internal/shuffle"
)

// Sink receives each shuffled corpus block as it is merged.
type Sink interface {
	Append(split Split, records []Record) error
}

// Stats counts the records contributed by one corpus.
type Stats struct {
	Corpus string
	All    int
	Val    int
	Train  int
}

func (s *Stats) add(split Split, n int) {
	switch split {
	case SplitAll:
		s.All += n
	case SplitVal:
		s.Val += n
	case SplitTrain:
		s.Train += n
	}
}

// Merger combines corpora into global splits.
type Merger struct {
	Root     string
	Shuffler shuffle.Shuffler
	// Sink, when set, receives every block right after it is shuffled,
	// so global split files grow corpus by corpus.
	Sink   Sink
	Logger *slog.Logger
}

// Merge reads every corpus in order and, for each split in MergeOrder,
// shuffles the corpus block with a seed derived from its own record count
// before appending it. The returned blocks keep corpus order.
func (m Merger) Merge(ctx context.Context, corpora []string) (Splits, []Stats, error) {
	logger := logging.WithContext(ctx, logging.NewComponentLogger(m.Logger, "corpus"))

	var merged Splits
	stats := make([]Stats, 0, len(corpora))
	for _, name := range corpora {
		if err := ctx.Err(); err != nil {
			return merged, stats, err
		}
		st := Stats{Corpus: name}
		for _, split := range MergeOrder {
			records, err := Load(m.Root, name, split)
			if err != nil {
				return merged, stats, err
			}
			shuffle.Shuffle(m.Shuffler, records)
			if m.Sink != nil {
				if err := m.Sink.Append(split, records); err != nil {
					return merged, stats, fmt.Errorf("append %s from %s: %w", split.FileName(), name, err)
				}
			}
			merged.Append(split, records)
			st.add(split, len(records))
		}
		logger.Info("merged corpus",
			logging.Corpus(name),
			logging.Int("all", st.All),
			logging.Int("val", st.Val),
			logging.Int("train", st.Train),
		)
		stats = append(stats, st)
	}
	return merged, stats, nil
}

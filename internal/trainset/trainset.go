// Package trainset selects the records that feed audio materialization.
package trainset

import (
	"ttsprep/internal/corpus"
	"ttsprep/internal/selection"
)

// Entry is one selected utterance.
type Entry struct {
	WavPath  string
	RecordID string
	Text     string
}

// Select keeps the records of each block, in block order, whose voice and
// language are both in sel. The runner passes the shuffled train block,
// the shuffled val block and the all block, so a record present in both
// train/val and all is selected twice.
func Select(sel selection.Selection, blocks ...[]corpus.Record) []Entry {
	var out []Entry
	for _, block := range blocks {
		for _, rec := range block {
			if !sel.Matches(rec.Voice, rec.Language) {
				continue
			}
			out = append(out, Entry{
				WavPath:  rec.WavPath,
				RecordID: rec.ID,
				Text:     rec.Text,
			})
		}
	}
	return out
}

// Dedupe drops entries identical to an earlier one, keeping first
// occurrences in order.
func Dedupe(entries []Entry) []Entry {
	seen := make(map[Entry]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Package manifest writes the training list and the transcript table that
// pair materialized audio with record text.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"ttsprep/internal/fileutil"
	"ttsprep/internal/materialize"
)

// File names written to the work directory.
const (
	TrainListFile   = "train.json"
	TranscriptsFile = "transcripts.txt"
)

// Pair links an audio output id to its feature id.
type Pair struct {
	Audio   string
	Feature string
}

// MarshalJSON encodes the pair as a two-element array.
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Audio, p.Feature})
}

// Pairs builds one pair per output, in order. Audio ids live under
// audioDir and feature ids under featureDir.
func Pairs(outputs []materialize.Output, audioDir, featureDir string) []Pair {
	pairs := make([]Pair, len(outputs))
	for i, o := range outputs {
		pairs[i] = Pair{
			Audio:   path.Join(audioDir, o.Stem),
			Feature: path.Join(featureDir, o.Stem),
		}
	}
	return pairs
}

// EncodeTrainList renders pairs as a JSON array indented with one space and
// no trailing newline.
func EncodeTrainList(pairs []Pair) ([]byte, error) {
	if pairs == nil {
		pairs = []Pair{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(pairs); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteTrainList replaces the training list at filePath.
func WriteTrainList(filePath string, pairs []Pair) error {
	data, err := EncodeTrainList(pairs)
	if err != nil {
		return fmt.Errorf("encode train list: %w", err)
	}
	if err := fileutil.WriteAtomic(filePath, func(w io.Writer) error {
		_, werr := w.Write(data)
		return werr
	}); err != nil {
		return fmt.Errorf("write train list: %w", err)
	}
	return nil
}

// TranscriptLine renders "<stem>|<record_id>|<text>".
func TranscriptLine(o materialize.Output) string {
	return strings.Join([]string{o.Stem, o.Entry.RecordID, o.Entry.Text}, "|")
}

// WriteTranscripts replaces the transcript table at filePath with one
// newline-terminated line per output.
func WriteTranscripts(filePath string, outputs []materialize.Output) error {
	if err := fileutil.WriteAtomic(filePath, func(w io.Writer) error {
		for _, o := range outputs {
			if _, err := io.WriteString(w, TranscriptLine(o)+"\n"); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("write transcripts: %w", err)
	}
	return nil
}

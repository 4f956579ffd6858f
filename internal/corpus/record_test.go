package corpus_test

import (
	"errors"
	"strings"
	"testing"

	"ttsprep/internal/corpus"
)

func TestParseRecordRoundTrip(t *testing.T) {
	line := "r1|v1|chr|wav/foo.wav|||hello there"
	rec, err := corpus.ParseRecord(line)
	if err != nil {
		t.Fatalf("ParseRecord returned error: %v", err)
	}
	if rec.ID != "r1" || rec.Voice != "v1" || rec.Language != "chr" {
		t.Fatalf("unexpected identity fields: %+v", rec)
	}
	if rec.WavPath != "wav/foo.wav" || rec.Text != "hello there" {
		t.Fatalf("unexpected payload fields: %+v", rec)
	}
	if got := rec.String(); got != line {
		t.Fatalf("String() = %q, want %q", got, line)
	}
}

func TestParseRecordRejectsFieldCount(t *testing.T) {
	for _, line := range []string{
		"r1|v1|chr|wav/foo.wav||hello",
		"r1|v1|chr|wav/foo.wav|||hello|extra",
		"just text",
	} {
		_, err := corpus.ParseRecord(line)
		if !errors.Is(err, corpus.ErrMalformedRecord) {
			t.Fatalf("ParseRecord(%q) error = %v, want ErrMalformedRecord", line, err)
		}
	}
}

func TestQualifyRewritesCorpusRelativePaths(t *testing.T) {
	rec := corpus.Record{ID: "1", WavPath: "wav/foo.wav"}
	got := corpus.Qualify("corpusA", rec)
	if got.WavPath != "corpusA/wav/foo.wav" {
		t.Fatalf("unexpected qualified path: %q", got.WavPath)
	}

	nested := corpus.Qualify("cherokee/set-1", rec)
	if nested.WavPath != "cherokee/set-1/wav/foo.wav" {
		t.Fatalf("unexpected nested path: %q", nested.WavPath)
	}
}

func TestQualifyLeavesOtherPathsAlone(t *testing.T) {
	for _, p := range []string{"other/wav/foo.wav", "/abs/wav/foo.wav", "wavs/foo.wav", "foo.wav"} {
		rec := corpus.Record{WavPath: p}
		if got := corpus.Qualify("corpusA", rec); got.WavPath != p {
			t.Fatalf("Qualify changed %q to %q", p, got.WavPath)
		}
	}
}

func TestSplitFileNames(t *testing.T) {
	var names []string
	for _, split := range corpus.MergeOrder {
		names = append(names, split.FileName())
	}
	if got := strings.Join(names, ","); got != "all.txt,val.txt,train.txt" {
		t.Fatalf("unexpected merge order: %s", got)
	}
}

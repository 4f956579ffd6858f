package materialize_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"ttsprep/internal/materialize"
	"ttsprep/internal/testsupport"
	"ttsprep/internal/trainset"
)

// copyConverter writes the source path into the destination.
type copyConverter struct {
	mu    sync.Mutex
	calls []string
	fail  string
}

func (c *copyConverter) Convert(ctx context.Context, src, dst string) error {
	c.mu.Lock()
	c.calls = append(c.calls, src)
	c.mu.Unlock()
	if c.fail != "" && strings.HasSuffix(src, c.fail) {
		return errors.New("boom")
	}
	return os.WriteFile(dst, []byte(src), 0o644)
}

func entries(paths ...string) []trainset.Entry {
	out := make([]trainset.Entry, len(paths))
	for i, p := range paths {
		out[i] = trainset.Entry{WavPath: p, RecordID: fmt.Sprint(i), Text: "t"}
	}
	return out
}

func TestStem(t *testing.T) {
	cases := map[string]string{
		"A/wav/foo.wav":     "foo",
		"foo.tar.wav":       "foo.tar",
		"A/wav/noext":       "noext",
		"/abs/path/bar.mp3": "bar",
	}
	for in, want := range cases {
		if got := materialize.Stem(in); got != want {
			t.Fatalf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunKeepsOrderWithWorkers(t *testing.T) {
	work := t.TempDir()
	out := filepath.Join(work, "wavs")
	var paths []string
	for i := 0; i < 20; i++ {
		paths = append(paths, fmt.Sprintf("A/wav/u%02d.wav", i))
	}
	conv := &copyConverter{}

	outputs, err := materialize.Run(context.Background(), entries(paths...), materialize.Options{
		WorkDir:   work,
		OutDir:    out,
		Converter: conv,
		Workers:   4,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(outputs) != 20 || len(conv.calls) != 20 {
		t.Fatalf("expected 20 outputs and calls, got %d and %d", len(outputs), len(conv.calls))
	}
	for i, o := range outputs {
		want := fmt.Sprintf("u%02d", i)
		if o.Stem != want || o.Entry.RecordID != fmt.Sprint(i) {
			t.Fatalf("output %d out of order: %+v", i, o)
		}
		if got := testsupport.ReadFile(t, o.Path); got != filepath.Join(work, "A", "wav", want+".wav") {
			t.Fatalf("unexpected source for %s: %q", o.Path, got)
		}
	}
}

func TestRunResolvesCollisionsToLastEntry(t *testing.T) {
	work := t.TempDir()
	out := filepath.Join(work, "wavs")
	conv := &copyConverter{}

	outputs, err := materialize.Run(context.Background(), entries("A/wav/x.wav", "B/wav/y.wav", "B/wav/x.flac"), materialize.Options{
		WorkDir:   work,
		OutDir:    out,
		Converter: conv,
		Workers:   2,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !outputs[0].Superseded || outputs[1].Superseded || outputs[2].Superseded {
		t.Fatalf("unexpected superseded flags: %+v", outputs)
	}
	if materialize.Superseded(outputs) != 1 {
		t.Fatalf("expected one superseded output")
	}
	if len(conv.calls) != 3 {
		t.Fatalf("expected every distinct source converted once, calls=%v", conv.calls)
	}
	if got := testsupport.ReadFile(t, filepath.Join(out, "x.wav")); got != filepath.Join(work, "B", "wav", "x.flac") {
		t.Fatalf("expected last entry to win, got %q", got)
	}
	names, err := os.ReadDir(out)
	if err != nil || len(names) != 2 {
		t.Fatalf("expected only x.wav and y.wav in output dir, got %v (err %v)", names, err)
	}
}

func TestRunRejectsUnreadableSupersededSource(t *testing.T) {
	work := t.TempDir()
	conv := &copyConverter{fail: "A/wav/x.wav"}

	_, err := materialize.Run(context.Background(), entries("A/wav/x.wav", "B/wav/x.wav"), materialize.Options{
		WorkDir:   work,
		OutDir:    filepath.Join(work, "wavs"),
		Converter: conv,
		Workers:   1,
	})
	if err == nil {
		t.Fatal("expected undecodable superseded source to abort the run")
	}
	if !strings.Contains(err.Error(), filepath.Join(work, "A", "wav", "x.wav")) {
		t.Fatalf("expected source path in error, got %v", err)
	}
}

func TestRunConvertsRepeatedSourceOnce(t *testing.T) {
	work := t.TempDir()
	conv := &copyConverter{}

	outputs, err := materialize.Run(context.Background(), entries("A/wav/a.wav", "A/wav/a.wav"), materialize.Options{
		WorkDir:   work,
		OutDir:    filepath.Join(work, "wavs"),
		Converter: conv,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if materialize.Superseded(outputs) != 1 || len(conv.calls) != 1 {
		t.Fatalf("expected one conversion for a repeated source, calls=%v", conv.calls)
	}
}

func TestRunResetsOutputDir(t *testing.T) {
	work := t.TempDir()
	out := filepath.Join(work, "wavs")
	stale := filepath.Join(out, "stale.wav")
	testsupport.WriteFile(t, stale, "old")

	if _, err := materialize.Run(context.Background(), nil, materialize.Options{
		WorkDir:   work,
		OutDir:    out,
		Converter: &copyConverter{},
	}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected stale output removed, stat err = %v", err)
	}
	if info, err := os.Stat(out); err != nil || !info.IsDir() {
		t.Fatalf("expected empty output dir, err = %v", err)
	}
}

func TestRunFailsFast(t *testing.T) {
	work := t.TempDir()
	conv := &copyConverter{fail: "bad.wav"}
	_, err := materialize.Run(context.Background(), entries("A/wav/bad.wav", "A/wav/a.wav", "A/wav/b.wav"), materialize.Options{
		WorkDir:   work,
		OutDir:    filepath.Join(work, "wavs"),
		Converter: conv,
		Workers:   1,
	})
	if err == nil {
		t.Fatal("expected conversion failure")
	}
	if !strings.Contains(err.Error(), filepath.Join(work, "A", "wav", "bad.wav")) {
		t.Fatalf("expected source path in error, got %v", err)
	}
	if len(conv.calls) != 1 {
		t.Fatalf("expected remaining work cancelled, calls=%v", conv.calls)
	}
}

func TestRunHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	work := t.TempDir()
	_, err := materialize.Run(ctx, entries("A/wav/a.wav"), materialize.Options{
		WorkDir:   work,
		OutDir:    filepath.Join(work, "wavs"),
		Converter: &copyConverter{},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

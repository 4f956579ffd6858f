package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the contents of path as a string.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// CorpusFiles holds the raw lines of one corpus's three split files.
type CorpusFiles struct {
	All   []string
	Val   []string
	Train []string
}

// WriteCorpus lays out all.txt, val.txt and train.txt for corpus under
// root. Each line gets a trailing newline.
func WriteCorpus(t testing.TB, root, corpus string, files CorpusFiles) {
	t.Helper()

	dir := filepath.Join(root, filepath.FromSlash(corpus))
	for name, lines := range map[string][]string{
		"all.txt":   files.All,
		"val.txt":   files.Val,
		"train.txt": files.Train,
	} {
		var b strings.Builder
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		WriteFile(t, filepath.Join(dir, name), b.String())
	}
}

// Line builds a seven-field record line.
func Line(id, voice, language, wavPath, text string) string {
	return strings.Join([]string{id, voice, language, wavPath, "", "", text}, "|")
}

// StubBinary writes an executable shell script named name into a fresh
// directory and makes that directory the whole PATH for the test.
func StubBinary(t testing.TB, name, script string) string {
	t.Helper()

	binDir := t.TempDir()
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	t.Setenv("PATH", binDir)
	return target
}

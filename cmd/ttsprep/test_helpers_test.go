package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ttsprep/internal/testsupport"
)

type cliTestEnv struct {
	workDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Chdir(base)

	workDir := filepath.Join(base, "work")
	testsupport.WriteCorpus(t, workDir, "A", testsupport.CorpusFiles{
		All:   []string{testsupport.Line("a1", "v1", "chr", "wav/a1.wav", "Osiyo"), testsupport.Line("a2", "v1", "chr", "wav/a2.wav", "Wado")},
		Val:   []string{testsupport.Line("a2", "v1", "chr", "wav/a2.wav", "Wado")},
		Train: []string{testsupport.Line("a1", "v1", "chr", "wav/a1.wav", "Osiyo")},
	})
	testsupport.WriteTone(t, filepath.Join(workDir, "A", "wav", "a1.wav"), 22050, 2, 0.2)
	testsupport.WriteTone(t, filepath.Join(workDir, "A", "wav", "a2.wav"), 16000, 1, 0.2)
	testsupport.WriteFile(t, filepath.Join(workDir, "create_config.json"), `{"voices": ["v1"], "languages": ["chr"]}`)

	configPath := filepath.Join(base, "ttsprep.toml")
	writeTestConfig(t, configPath, map[string]any{
		"paths":   map[string]any{"work_dir": workDir},
		"corpora": map[string]any{"dirs": []string{"A"}},
		"logging": map[string]any{"level": "error"},
	})

	return &cliTestEnv{workDir: workDir, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, payload map[string]any) {
	t.Helper()
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

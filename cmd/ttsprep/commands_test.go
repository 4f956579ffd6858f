package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ttsprep/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
}

func TestConfigValidateReportsMissingCorpus(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env.configPath, map[string]any{
		"paths":   map[string]any{"work_dir": env.workDir},
		"corpora": map[string]any{"dirs": []string{"A", "nowhere"}},
	})

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	requireContains(t, out, "missing split file: "+filepath.Join(env.workDir, "nowhere", "all.txt"))
	if strings.Contains(out, filepath.Join(env.workDir, "A")) {
		t.Fatalf("complete corpus reported as missing: %q", out)
	}
}

func TestRunThenHistory(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"run", "--json", "--workers", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var summary struct {
		RunID        string `json:"run_id"`
		AllRecords   int    `json:"all_records"`
		Selected     int    `json:"selected"`
		Materialized int    `json:"materialized"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary %q: %v", out, err)
	}
	if summary.AllRecords != 2 || summary.Selected != 4 || summary.Materialized != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if info := testsupport.ReadWAV(t, filepath.Join(env.workDir, "wavs", "a1.wav")); info.SampleRate != 16000 || info.Channels != 1 {
		t.Fatalf("unexpected output audio: %+v", info)
	}

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode history %q: %v", out, err)
	}
	if len(runs) != 1 || runs[0].ID != summary.RunID || runs[0].Status != "succeeded" {
		t.Fatalf("unexpected history: %+v", runs)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history table: %v", err)
	}
	requireContains(t, out, summary.RunID)

	out, _, err = runCLI(t, []string{"history", "--clear"}, env.configPath)
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Removed 1 run(s)")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history after clear: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestRunTableOutputAndWorkdirFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env.configPath, map[string]any{
		"corpora": map[string]any{"dirs": []string{"A"}},
		"logging": map[string]any{"level": "error"},
	})

	out, _, err := runCLI(t, []string{"--workdir", env.workDir, "run", "--skip-audio"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Selected entries")
	requireContains(t, out, "Corpus")
	if got := testsupport.ReadFile(t, filepath.Join(env.workDir, "transcripts.txt")); got == "" {
		t.Fatal("expected transcripts to be written")
	}
}

func TestRunRejectsBadWorkers(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"run", "--workers", "0"}, env.configPath); err == nil {
		t.Fatal("expected --workers 0 to be rejected")
	}
}

func TestVocabCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"vocab"}, env.configPath)
	if err != nil {
		t.Fatalf("vocab: %v", err)
	}
	requireContains(t, out, "Characters")
	got := testsupport.ReadFile(t, filepath.Join(env.workDir, "json-characters.json"))
	if got != "{\n   \"characters\": \"adioswy\"\n}\n" {
		t.Fatalf("unexpected vocabulary %q", got)
	}
}

func TestSelectionShowHealsFile(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.workDir, "create_config.json")
	testsupport.WriteFile(t, path, "not json")

	out, _, err := runCLI(t, []string{"selection", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("selection show: %v", err)
	}
	requireContains(t, out, "wrote the default selection")
	requireContains(t, out, "(none)")

	out, _, err = runCLI(t, []string{"selection", "show", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("selection show --json: %v", err)
	}
	var sel struct {
		Voices    []string `json:"voices"`
		Languages []string `json:"languages"`
	}
	if err := json.Unmarshal([]byte(out), &sel); err != nil {
		t.Fatalf("decode selection: %v", err)
	}
	if sel.Voices == nil || len(sel.Voices) != 0 {
		t.Fatalf("expected empty voices, got %v", sel.Voices)
	}
}

func TestDepsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.StubBinary(t, "ffmpeg", "#!/bin/sh\nexit 0\n")

	out, _, err := runCLI(t, []string{"deps"}, env.configPath)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "yes")
}

package selection_test

import (
	"os"
	"path/filepath"
	"testing"

	"ttsprep/internal/selection"
	"ttsprep/internal/testsupport"
)

func TestLoadOrDefaultReadsValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "create_config.json")
	testsupport.WriteFile(t, path, `{"voices": ["v2", "v1"], "languages": ["chr"], "comment": "ignored"}`)

	sel, rewritten, err := selection.LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault returned error: %v", err)
	}
	if rewritten {
		t.Fatal("expected valid file to be kept")
	}
	if len(sel.Voices) != 2 || sel.Voices[0] != "v2" || sel.Voices[1] != "v1" {
		t.Fatalf("unexpected voices: %v", sel.Voices)
	}
	if len(sel.Languages) != 1 || sel.Languages[0] != "chr" {
		t.Fatalf("unexpected languages: %v", sel.Languages)
	}
}

func TestLoadOrDefaultHealsBadFiles(t *testing.T) {
	cases := map[string]string{
		"invalid json":  `{"voices": [`,
		"not an object": `["v1"]`,
		"mistyped":      `{"voices": "v1", "languages": []}`,
		"empty":         ``,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "create_config.json")
			testsupport.WriteFile(t, path, content)

			sel, rewritten, err := selection.LoadOrDefault(path)
			if err != nil {
				t.Fatalf("LoadOrDefault returned error: %v", err)
			}
			if !rewritten {
				t.Fatal("expected default selection")
			}
			if sel.Voices == nil || sel.Languages == nil || len(sel.Voices)+len(sel.Languages) != 0 {
				t.Fatalf("unexpected default: %+v", sel)
			}
		})
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "create_config.json")
	sel, rewritten, err := selection.LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault returned error: %v", err)
	}
	if !rewritten {
		t.Fatal("expected missing file to be reported for rewrite")
	}
	if _, err := os.Stat(path); err == nil {
		t.Fatal("LoadOrDefault must not write the file")
	}
	if sel.Matches("v1", "chr") {
		t.Fatal("default selection must select nothing")
	}
}

func TestSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "create_config.json")
	if err := selection.Save(path, selection.Default()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	want := "{\n    \"voices\": [],\n    \"languages\": []\n}"
	if got := testsupport.ReadFile(t, path); got != want {
		t.Fatalf("unexpected default document:\n%s", got)
	}

	sel := selection.Selection{Voices: []string{"v1"}, Languages: []string{"chr", "en"}}
	if err := selection.Save(path, sel); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, rewritten, err := selection.LoadOrDefault(path)
	if err != nil || rewritten {
		t.Fatalf("reload: rewritten=%v err=%v", rewritten, err)
	}
	if !loaded.Matches("v1", "en") || loaded.Matches("v2", "en") || loaded.Matches("v1", "fr") {
		t.Fatalf("unexpected reloaded selection: %+v", loaded)
	}
}

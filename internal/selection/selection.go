// Package selection loads the voice and language selection that decides
// which records enter the training set.
//
// The selection file is self-healing: a missing or unreadable document is
// replaced by the default (empty) selection, which selects nothing.
package selection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"ttsprep/internal/fileutil"
)

// Selection lists the voices and languages admitted by the training-set
// filter. Order is preserved as written.
type Selection struct {
	Voices    []string `json:"voices"`
	Languages []string `json:"languages"`
}

// Default returns the empty selection.
func Default() Selection {
	return Selection{Voices: []string{}, Languages: []string{}}
}

// Matches reports whether a record with the given voice and language is
// selected. Both must be listed.
func (s Selection) Matches(voice, language string) bool {
	return slices.Contains(s.Voices, voice) && slices.Contains(s.Languages, language)
}

// LoadOrDefault reads the selection at path. When the file is missing, is
// not a JSON object, or holds fields of the wrong type, it returns Default
// and rewritten=true so the caller can persist the default. Unknown keys
// are ignored. Only read failures other than a missing file are returned
// as errors.
func LoadOrDefault(path string) (Selection, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), true, nil
		}
		return Selection{}, false, fmt.Errorf("read selection: %w", err)
	}
	sel, ok := parse(data)
	if !ok {
		return Default(), true, nil
	}
	return sel, false, nil
}

func parse(data []byte) (Selection, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return Selection{}, false
	}
	var sel Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return Selection{}, false
	}
	if sel.Voices == nil {
		sel.Voices = []string{}
	}
	if sel.Languages == nil {
		sel.Languages = []string{}
	}
	return sel, true
}

// Save writes sel to path as JSON indented with four spaces.
func Save(path string, sel Selection) error {
	if sel.Voices == nil {
		sel.Voices = []string{}
	}
	if sel.Languages == nil {
		sel.Languages = []string{}
	}
	data, err := json.MarshalIndent(sel, "", "    ")
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	err = fileutil.WriteAtomic(path, func(w io.Writer) error {
		_, werr := w.Write(data)
		return werr
	})
	if err != nil {
		return fmt.Errorf("write selection: %w", err)
	}
	return nil
}

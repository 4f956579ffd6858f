// Package vocab derives the character inventory of the merged transcripts.
//
// Transcripts are scanned record by record, so line terminators never enter
// the inventory: "\n" and "\r" are not vocabulary characters even though
// the transcript files are newline separated.
package vocab

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"ttsprep/internal/corpus"
	"ttsprep/internal/fileutil"
	"ttsprep/internal/textutil"
)

// FileName is the vocabulary document written to the work directory.
const FileName = "json-characters.json"

// Punctuation excluded from the vocabulary.
const (
	WordInternal = "'-"
	Separators   = "、。，\"(),.:;¿?¡!\\"
)

func excluded(r rune) bool {
	return r == '\n' || r == '\r' || strings.ContainsRune(WordInternal, r) || strings.ContainsRune(Separators, r)
}

// Extract returns the sorted set of distinct characters in the lower-cased
// transcripts, minus punctuation.
func Extract(records []corpus.Record) []rune {
	seen := make(map[rune]struct{})
	for _, rec := range records {
		for _, r := range textutil.FoldLower(rec.Text) {
			if excluded(r) {
				continue
			}
			seen[r] = struct{}{}
		}
	}
	chars := make([]rune, 0, len(seen))
	for r := range seen {
		chars = append(chars, r)
	}
	slices.Sort(chars)
	return chars
}

// Encode writes the vocabulary document: a JSON object with the single key
// "characters", indented with three spaces, characters written literally,
// and a trailing newline.
func Encode(w io.Writer, chars []rune) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "   ")
	return enc.Encode(map[string]string{"characters": string(chars)})
}

// Write replaces the vocabulary document at path.
func Write(path string, chars []rune) error {
	if err := fileutil.WriteAtomic(path, func(w io.Writer) error {
		return Encode(w, chars)
	}); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}

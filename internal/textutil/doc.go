// Package textutil provides the Unicode canonicalization helpers shared by
// the corpus reader and the vocabulary extractor.
//
// All transcript text passes through NFC composition so that a character
// typed as base letter plus combining mark and the same character typed
// precomposed end up byte-identical in the split files and count once in
// the vocabulary.
package textutil

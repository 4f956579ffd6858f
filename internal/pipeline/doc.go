// Package pipeline runs the corpus preparation stages against a work
// directory.
//
// A run holds an exclusive lock on the work directory, heals the selection
// file, rebuilds the global split files from the configured corpora, writes
// the vocabulary, reshuffles train and val, filters the training entries,
// converts their audio and writes the manifests. Each stage writes its
// artifacts before the next one starts, so a failed run leaves the outputs
// of every completed stage on disk.
package pipeline

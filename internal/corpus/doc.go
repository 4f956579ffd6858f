// Package corpus models transcript records and merges per-corpus split files
// into the global train/val/all splits.
//
// A corpus is a directory holding all.txt, val.txt and train.txt, each a
// list of pipe-delimited records with exactly seven fields:
//
//	record_id|voice|language|wav_path|reserved|reserved|text
//
// Lines are NFC-normalized on read, and wav paths that are relative to the
// corpus (starting with "wav/") are qualified with the corpus directory so
// the record stays locatable after the merge. Each split is shuffled with a
// count-seeded generator before it is appended to the global block.
package corpus

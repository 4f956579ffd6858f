// Package materialize converts the selected utterances into the output
// audio directory.
//
// Output files are named by the source stem, so utterances from different
// corpora that share a base name land on the same file. Only the last such
// entry in filter order is converted; earlier ones are marked superseded
// and still appear in the manifests.
package materialize

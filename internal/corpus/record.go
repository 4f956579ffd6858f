package corpus

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// FieldCount is the number of pipe-delimited fields in a record line.
const FieldCount = 7

// Delimiter separates record fields on disk.
const Delimiter = "|"

// wavPrefix marks a wav path that is relative to its corpus directory.
const wavPrefix = "wav/"

// ErrMalformedRecord indicates a line without exactly FieldCount fields.
var ErrMalformedRecord = errors.New("malformed record")

// Record is one transcribed utterance.
type Record struct {
	ID        string
	Voice     string
	Language  string
	WavPath   string
	Reserved1 string
	Reserved2 string
	Text      string
}

// ParseRecord splits a record line into its fields.
func ParseRecord(line string) (Record, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != FieldCount {
		return Record{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, FieldCount, len(fields))
	}
	return Record{
		ID:        fields[0],
		Voice:     fields[1],
		Language:  fields[2],
		WavPath:   fields[3],
		Reserved1: fields[4],
		Reserved2: fields[5],
		Text:      fields[6],
	}, nil
}

// String renders the record in its on-disk form, without a line terminator.
func (r Record) String() string {
	return strings.Join([]string{
		r.ID,
		r.Voice,
		r.Language,
		r.WavPath,
		r.Reserved1,
		r.Reserved2,
		r.Text,
	}, Delimiter)
}

// Qualify rewrites a corpus-relative wav path ("wav/...") to include the
// corpus directory. Records whose path does not start with "wav/" are
// returned unchanged.
func Qualify(corpus string, r Record) Record {
	if !strings.HasPrefix(r.WavPath, wavPrefix) {
		return r
	}
	r.WavPath = path.Join(corpus, r.WavPath)
	return r
}

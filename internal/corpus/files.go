package corpus

import (
	"fmt"
	"io"
	"path/filepath"

	"ttsprep/internal/fileutil"
)

// SplitFiles manages the global train.txt, val.txt and all.txt in Dir.
type SplitFiles struct {
	Dir string
}

// Path returns the global file for split.
func (f SplitFiles) Path(split Split) string {
	return filepath.Join(f.Dir, split.FileName())
}

// Remove deletes all three global split files if present.
func (f SplitFiles) Remove() error {
	for _, split := range MergeOrder {
		if err := fileutil.RemoveIfExists(f.Path(split)); err != nil {
			return fmt.Errorf("remove %s: %w", split.FileName(), err)
		}
	}
	return nil
}

// Append adds records to the end of the split's global file.
func (f SplitFiles) Append(split Split, records []Record) error {
	return fileutil.AppendTo(f.Path(split), func(w io.Writer) error {
		return WriteRecords(w, records)
	})
}

// Write replaces the split's global file with records.
func (f SplitFiles) Write(split Split, records []Record) error {
	return fileutil.WriteAtomic(f.Path(split), func(w io.Writer) error {
		return WriteRecords(w, records)
	})
}

// Read parses the split's global file.
func (f SplitFiles) Read(split Split) ([]Record, error) {
	return ReadFile(f.Path(split))
}

// WriteRecords writes one record per line, each terminated by "\n".
func WriteRecords(w io.Writer, records []Record) error {
	for _, rec := range records {
		if _, err := io.WriteString(w, rec.String()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

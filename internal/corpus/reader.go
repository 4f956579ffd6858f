package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ttsprep/internal/textutil"
)

// ReadRecords parses every line of r. Each line is trimmed of trailing
// whitespace and NFC-normalized before parsing; blank lines are skipped.
// name is used to locate errors.
func ReadRecords(r io.Reader, name string) ([]Record, error) {
	reader := bufio.NewReader(r)
	var records []Record
	lineNo := 0
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lineNo++
			if text := textutil.CanonicalLine(line); text != "" {
				rec, parseErr := ParseRecord(text)
				if parseErr != nil {
					return nil, fmt.Errorf("%s:%d: %w", name, lineNo, parseErr)
				}
				records = append(records, rec)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
}

// ReadFile parses the record file at path.
func ReadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadRecords(file, path)
}

// SplitPath returns the on-disk location of a corpus split under root.
// corpus is a slash-separated path relative to root.
func SplitPath(root, corpus string, split Split) string {
	return filepath.Join(root, filepath.FromSlash(corpus), split.FileName())
}

// Load reads one split of a corpus and qualifies its wav paths. A missing
// split file is an error: every listed corpus must provide all three.
func Load(root, corpus string, split Split) ([]Record, error) {
	records, err := ReadFile(SplitPath(root, corpus, split))
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", corpus, err)
	}
	for i := range records {
		records[i] = Qualify(corpus, records[i])
	}
	return records, nil
}

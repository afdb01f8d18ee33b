package source

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVReader reads attribute columns from a CSV file with a header row.
type CSVReader struct {
	path string
}

// NewCSVReader creates a reader for the given CSV path.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// Fields returns the header row.
func (r *CSVReader) Fields() ([]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: open csv %s", r.path)
	}
	defer f.Close() //nolint:errcheck

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "source: read csv header %s", r.path)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return header, nil
}

// Column reads all values of one named column.
func (r *CSVReader) Column(field string) (*Column, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: open csv %s", r.path)
	}
	defer f.Close() //nolint:errcheck

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "source: read csv header %s", r.path)
	}

	idx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), field) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, eris.Errorf("source: field %q not found in %s", field, r.path)
	}

	var raw []string
	for {
		record, readErr := cr.Read()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, eris.Wrapf(readErr, "source: read csv %s", r.path)
		}
		if idx < len(record) {
			raw = append(raw, record[idx])
		} else {
			raw = append(raw, "")
		}
	}

	return Screen(field, raw), nil
}

package source

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXReader reads attribute columns from the first sheet of an XLSX
// workbook. Row 0 is the header.
type XLSXReader struct {
	path string
}

// NewXLSXReader creates a reader for the given workbook path.
func NewXLSXReader(path string) *XLSXReader {
	return &XLSXReader{path: path}
}

func (r *XLSXReader) sheet() (*xlsx.Sheet, error) {
	f, err := xlsx.OpenFile(r.path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: open xlsx %s", r.path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("source: no sheets in %s", r.path)
	}
	return f.Sheets[0], nil
}

// Fields returns the header row of the first sheet.
func (r *XLSXReader) Fields() ([]string, error) {
	sheet, err := r.sheet()
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("source: empty sheet in %s", r.path)
	}
	return rowToStrings(sheet.Rows[0]), nil
}

// Column reads all values of one named column.
func (r *XLSXReader) Column(field string) (*Column, error) {
	sheet, err := r.sheet()
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("source: empty sheet in %s", r.path)
	}

	header := rowToStrings(sheet.Rows[0])
	idx := -1
	for i, name := range header {
		if strings.EqualFold(name, field) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, eris.Errorf("source: field %q not found in %s", field, r.path)
	}

	raw := make([]string, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if idx < len(cells) {
			raw = append(raw, cells[idx])
		} else {
			raw = append(raw, "")
		}
	}

	return Screen(field, raw), nil
}

func rowToStrings(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		out[i] = strings.TrimSpace(cell.String())
	}
	return out
}

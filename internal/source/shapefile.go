package source

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ShapefileReader reads DBF attribute columns from a shapefile.
type ShapefileReader struct {
	path string
}

// NewShapefileReader creates a reader for the given .shp path.
func NewShapefileReader(path string) *ShapefileReader {
	return &ShapefileReader{path: path}
}

// Fields returns the DBF field names.
func (r *ShapefileReader) Fields() ([]string, error) {
	reader, err := shp.Open(r.path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: open shapefile %s", r.path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}
	return names, nil
}

// Column reads all values of one named DBF attribute, in shape record order.
func (r *ShapefileReader) Column(field string) (*Column, error) {
	reader, err := shp.Open(r.path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: open shapefile %s", r.path)
	}
	defer func() { _ = reader.Close() }()

	idx := -1
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		if strings.EqualFold(name, field) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, eris.Errorf("source: field %q not found in %s", field, r.path)
	}

	var raw []string
	for reader.Next() {
		raw = append(raw, reader.Attribute(idx))
	}

	col := Screen(field, raw)
	if len(col.Invalid) > 0 {
		zap.L().Debug("screened invalid attribute values",
			zap.String("field", field),
			zap.Int("invalid", len(col.Invalid)),
			zap.Int("total", col.Total),
		)
	}
	return col, nil
}

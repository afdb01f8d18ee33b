// Package export writes classification output for downstream renderers:
// classified GeoJSON feature collections and portable style documents.
package export

import (
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/choropleth-cli/internal/source"
	"github.com/sells-group/choropleth-cli/internal/theme"
)

// WriteGeoJSON reads geometries and the classified attribute from a
// shapefile, assigns each feature its class symbol, and writes a GeoJSON
// FeatureCollection. Features whose attribute value failed screening get the
// suppressed (invisible) symbol.
func WriteGeoJSON(shpPath, field string, cls *theme.Classification, sym theme.Symbology, outPath string) error {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return eris.Wrapf(err, "export: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	fieldIdx := -1
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), field) {
			fieldIdx = i
			break
		}
	}
	if fieldIdx < 0 {
		return eris.Errorf("export: field %q not found in %s", field, shpPath)
	}

	var features []*geojson.Feature
	var skipped int
	record := 0
	for reader.Next() {
		_, shape := reader.Shape()
		g := shapeToGeom(shape)
		if g == nil {
			skipped++
			record++
			continue
		}

		props := map[string]any{field: reader.Attribute(fieldIdx)}

		value, valid := source.ParseValue(reader.Attribute(fieldIdx))
		symbol := sym.Suppressed
		if valid {
			props["value"] = value
			if r, ok := rangeFor(cls.Ranges, value); ok {
				symbol = theme.Symbol{
					FillColor:    r.Color.Hex(),
					FillOpacity:  classOpacity(sym),
					OutlineColor: outlineColor(sym),
					OutlineWidth: outlineWidth(sym),
				}
				props["class"] = r.Label
			}
		}
		props["fill"] = symbol.FillColor
		props["fill-opacity"] = symbol.FillOpacity
		props["stroke"] = symbol.OutlineColor
		props["stroke-width"] = symbol.OutlineWidth

		features = append(features, &geojson.Feature{
			Geometry:   g,
			Properties: props,
		})
		record++
	}

	if skipped > 0 {
		zap.L().Debug("export: skipped shapefile records without geometry",
			zap.Int("skipped", skipped),
		)
	}

	fc := geojson.FeatureCollection{Features: features}
	data, err := fc.MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "export: marshal feature collection")
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", outPath)
	}

	zap.L().Info("wrote classified geojson",
		zap.String("path", outPath),
		zap.Int("features", len(features)),
		zap.Int("classes", len(cls.Ranges)),
	)
	return nil
}

// rangeFor finds the class containing value. The last class is inclusive on
// its upper bound.
func rangeFor(ranges []theme.Range, value float64) (theme.Range, bool) {
	for i, r := range ranges {
		if value >= r.Lower && (value < r.Upper || (i == len(ranges)-1 && value <= r.Upper)) {
			return r, true
		}
	}
	return theme.Range{}, false
}

func classOpacity(sym theme.Symbology) float64 {
	if len(sym.Classes) > 0 {
		return sym.Classes[0].Symbol.FillOpacity
	}
	return 1
}

func outlineColor(sym theme.Symbology) string {
	if len(sym.Classes) > 0 {
		return sym.Classes[0].Symbol.OutlineColor
	}
	return "#323232"
}

func outlineWidth(sym theme.Symbology) float64 {
	if len(sym.Classes) > 0 {
		return sym.Classes[0].Symbol.OutlineWidth
	}
	return 0.2
}

// shapeToGeom converts a go-shp shape to a go-geom geometry. Unsupported
// shape types return nil.
func shapeToGeom(shape shp.Shape) geom.T {
	switch s := shape.(type) {
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y}).SetSRID(4326)
	case *shp.PolyLine:
		return polyLineToMultiLineString(s)
	case *shp.Polygon:
		return polygonToMultiPolygon(s)
	default:
		return nil
	}
}

// polyLineToMultiLineString converts a shapefile PolyLine to a geom.MultiLineString.
func polyLineToMultiLineString(pl *shp.PolyLine) geom.T {
	if pl == nil || pl.NumParts == 0 || len(pl.Points) == 0 {
		return nil
	}

	mls := geom.NewMultiLineString(geom.XY).SetSRID(4326)

	for i := int32(0); i < pl.NumParts; i++ {
		start := pl.Parts[i]
		var end int32
		if i+1 < pl.NumParts {
			end = pl.Parts[i+1]
		} else {
			end = int32(len(pl.Points))
		}

		coords := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			coords = append(coords, pl.Points[j].X, pl.Points[j].Y)
		}

		ls := geom.NewLineStringFlat(geom.XY, coords)
		if err := mls.Push(ls); err != nil {
			zap.L().Debug("export: skipping malformed linestring part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mls.NumLineStrings() == 0 {
		return nil
	}
	return mls
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon.
func polygonToMultiPolygon(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		coords := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			coords = append(coords, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, coords)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("export: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("export: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

package export

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// Shapefile attribute columns, in order.
const (
	fieldFIPS = iota
	fieldName
	fieldState
	fieldEdu
	fieldColor
	fieldBin
)

const nameWidth = 64

var shapefileFields = []shp.Field{
	shp.NumberField("FIPS", 5),
	shp.StringField("NAME", nameWidth),
	shp.StringField("STATE", 2),
	shp.FloatField("EDU", 8, 2),
	shp.StringField("COLOR", 7),
	shp.NumberField("BIN", 2),
}

// WriteShapefile writes counties as polygons with FIPS, NAME, STATE, EDU,
// COLOR and BIN attributes. The .shp extension is added to path when missing
// and the .shx and .dbf files are written next to it. Counties without an
// outline are skipped. It returns the number of shapes written.
func WriteShapefile(path string, counties []County) (int, error) {
	base := shapefileBase(path)

	w, err := shp.Create(base+".shp", shp.POLYGON)
	if err != nil {
		return 0, eris.Wrapf(err, "export: create shapefile %s", base+".shp")
	}
	written, err := writeShapes(w, counties)
	w.Close()

	// go-shp names the attribute table <base>dbf, without the dot.
	if err != nil {
		_ = os.Remove(base + "dbf")
		return written, err
	}
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return written, eris.Wrapf(err, "export: rename attribute table for %s", base+".shp")
	}
	return written, nil
}

// shapefileBase strips a .shp extension, in any case, from path.
func shapefileBase(path string) string {
	if ext := filepath.Ext(path); strings.EqualFold(ext, ".shp") {
		return strings.TrimSuffix(path, ext)
	}
	return path
}

func writeShapes(w *shp.Writer, counties []County) (int, error) {
	if err := w.SetFields(shapefileFields); err != nil {
		return 0, eris.Wrap(err, "export: shapefile fields")
	}

	written, skipped := 0, 0
	for _, c := range counties {
		poly := toShpPolygon(c.Geometry)
		if poly == nil {
			skipped++
			continue
		}
		row := int(w.Write(poly))

		attrs := map[int]interface{}{
			fieldFIPS:  c.FIPS,
			fieldName:  truncateUTF8(c.Name, nameWidth),
			fieldState: c.State,
			fieldEdu:   c.Education,
			fieldColor: c.Color,
			fieldBin:   c.Bin,
		}
		for field, v := range attrs {
			if err := w.WriteAttribute(row, field, v); err != nil {
				return written, eris.Wrapf(err, "export: fips %d attribute %d", c.FIPS, field)
			}
		}
		written++
	}

	if skipped > 0 {
		zap.L().Debug("export: skipped counties without outline", zap.Int("skipped", skipped))
	}
	return written, nil
}

// truncateUTF8 shortens s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// toShpPolygon flattens every ring of mp into one polygon part.
func toShpPolygon(mp *geom.MultiPolygon) *shp.Polygon {
	if mp == nil || mp.Empty() {
		return nil
	}

	var parts [][]shp.Point
	for i := 0; i < mp.NumPolygons(); i++ {
		p := mp.Polygon(i)
		for j := 0; j < p.NumLinearRings(); j++ {
			coords := p.LinearRing(j).Coords()
			part := make([]shp.Point, len(coords))
			for k, c := range coords {
				part[k] = shp.Point{X: c.X(), Y: c.Y()}
			}
			parts = append(parts, part)
		}
	}
	poly := shp.Polygon(*shp.NewPolyLine(parts))
	return &poly
}

// Package export writes the joined county data to GeoJSON, shapefile and
// XLSX outputs.
package export

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/edu-choropleth/internal/loader"
	"github.com/sells-group/edu-choropleth/internal/render"
	"github.com/sells-group/edu-choropleth/internal/scale"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	GeoJSON   Format = "geojson"
	Shapefile Format = "shp"
	XLSX      Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{GeoJSON, Shapefile, XLSX}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", eris.Errorf("export: unknown format %q", s)
}

// Ext returns the conventional file extension.
func (f Format) Ext() string {
	return "." + string(f)
}

// County is one county as drawn: its record (if any), its bin and color, and
// its outline.
type County struct {
	FIPS      int
	Name      string
	State     string
	Education float64
	Matched   bool
	Bin       int // -1 when unmatched
	Color     string
	Geometry  *geom.MultiPolygon
}

// Counties pairs the rendered shapes with their outlines, in drawing order.
func Counties(ds *loader.Dataset, res *render.Result) []County {
	out := make([]County, 0, len(res.Shapes))
	for i, s := range res.Shapes {
		c := County{
			FIPS:  s.FIPS,
			Bin:   -1,
			Color: s.Fill,
		}
		if i < len(ds.Features) {
			c.Geometry = ds.Features[i].Geometry
		}
		if s.Record != nil {
			c.Name = s.Record.AreaName
			c.State = s.Record.State
			c.Education = s.Record.BachelorsOrHigher
			c.Matched = true
			c.Bin = res.Scale.Bin(s.Record.BachelorsOrHigher)
		}
		out = append(out, c)
	}
	return out
}

// Write exports counties to path in the given format. domain is only used by
// XLSX, which adds a sheet describing the bins.
func Write(format Format, path string, counties []County, domain *scale.Domain, th *scale.Threshold) error {
	switch format {
	case GeoJSON:
		return WriteGeoJSONFile(path, counties)
	case Shapefile:
		_, err := WriteShapefile(path, counties)
		return err
	case XLSX:
		return WriteXLSX(path, counties, domain, th)
	default:
		return eris.Errorf("export: unknown format %q", format)
	}
}

package export

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// FeatureCollection converts counties to GeoJSON features keyed by FIPS.
// Counties without an outline keep a null geometry.
func FeatureCollection(counties []County) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(counties))}
	for _, c := range counties {
		props := map[string]interface{}{
			"fips":    c.FIPS,
			"matched": c.Matched,
			"color":   c.Color,
			"bin":     c.Bin,
		}
		if c.Matched {
			props["name"] = c.Name
			props["state"] = c.State
			props["bachelorsOrHigher"] = c.Education
		}

		f := &geojson.Feature{
			ID:         strconv.Itoa(c.FIPS),
			Properties: props,
		}
		// a nil *MultiPolygon in the interface would not read as nil
		if c.Geometry != nil {
			f.Geometry = c.Geometry
		}
		fc.Features = append(fc.Features, f)
	}
	return fc
}

// WriteGeoJSON encodes counties as a FeatureCollection to w.
func WriteGeoJSON(w io.Writer, counties []County) error {
	if err := json.NewEncoder(w).Encode(FeatureCollection(counties)); err != nil {
		return eris.Wrap(err, "export: encode geojson")
	}
	return nil
}

// WriteGeoJSONFile writes counties to a GeoJSON file at path.
func WriteGeoJSONFile(path string, counties []County) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := WriteGeoJSON(f, counties); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "export: close %s", path)
	}
	return nil
}

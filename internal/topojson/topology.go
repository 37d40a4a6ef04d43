// Package topojson decodes TopoJSON topologies into go-geom features.
//
// Only the parts needed for area maps are supported: quantized or absolute
// arcs, and Polygon / MultiPolygon geometries, either standalone or inside a
// GeometryCollection. Null geometries decode to features without a geometry.
package topojson

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// ErrObjectNotFound is returned when a named object is absent from the topology.
var ErrObjectNotFound = eris.New("topojson: object not found")

// Topology is a decoded TopoJSON document.
type Topology struct {
	Type      string                     `json:"type"`
	Transform *Transform                 `json:"transform,omitempty"`
	BBox      []float64                  `json:"bbox,omitempty"`
	Arcs      [][][]float64              `json:"arcs"`
	Objects   map[string]json.RawMessage `json:"objects"`
}

// Transform maps quantized positions to real coordinates.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Geometry is one TopoJSON geometry object. Arcs is kept raw because its
// nesting depends on Type.
type Geometry struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id,omitempty"`
	Arcs       json.RawMessage `json:"arcs,omitempty"`
	Geometries []Geometry      `json:"geometries,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
}

// Feature is a decoded area with its identifier.
type Feature struct {
	ID         int
	Properties map[string]any
	Geometry   *geom.MultiPolygon // nil for null geometries
}

// Validate performs the structural checks a decoder cannot express.
func (t *Topology) Validate() error {
	if t.Type != "Topology" {
		return eris.Errorf("topojson: unexpected type %q", t.Type)
	}
	if len(t.Objects) == 0 {
		return eris.New("topojson: no objects")
	}
	return nil
}

// ObjectNames lists the named objects in the topology.
func (t *Topology) ObjectNames() []string {
	names := make([]string, 0, len(t.Objects))
	for name := range t.Objects {
		names = append(names, name)
	}
	return names
}

// Features decodes the named object into features. A GeometryCollection
// yields one feature per member; any other geometry yields a single feature.
func (t *Topology) Features(name string) ([]Feature, error) {
	raw, ok := t.Objects[name]
	if !ok {
		return nil, eris.Wrapf(ErrObjectNotFound, "%q", name)
	}

	var obj Geometry
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, eris.Wrapf(err, "topojson: decode object %q", name)
	}

	arcs := t.decodeArcs()

	members := []Geometry{obj}
	if obj.Type == "GeometryCollection" {
		members = obj.Geometries
	}

	features := make([]Feature, 0, len(members))
	for i, g := range members {
		f, err := decodeFeature(g, arcs)
		if err != nil {
			return nil, eris.Wrapf(err, "topojson: object %q geometry %d", name, i)
		}
		features = append(features, f)
	}
	return features, nil
}

// decodeArcs converts every arc to absolute coordinates, undoing the delta
// encoding when the topology is quantized.
func (t *Topology) decodeArcs() [][]geom.Coord {
	out := make([][]geom.Coord, len(t.Arcs))
	for i, arc := range t.Arcs {
		coords := make([]geom.Coord, 0, len(arc))
		var x, y float64
		for _, p := range arc {
			if len(p) < 2 {
				continue
			}
			if t.Transform == nil {
				coords = append(coords, geom.Coord{p[0], p[1]})
				continue
			}
			x += p[0]
			y += p[1]
			coords = append(coords, geom.Coord{
				x*t.Transform.Scale[0] + t.Transform.Translate[0],
				y*t.Transform.Scale[1] + t.Transform.Translate[1],
			})
		}
		out[i] = coords
	}
	return out
}

func decodeFeature(g Geometry, arcs [][]geom.Coord) (Feature, error) {
	id, err := parseID(g.ID)
	if err != nil {
		return Feature{}, err
	}
	f := Feature{ID: id, Properties: g.Properties}

	var polys [][][]int
	switch g.Type {
	case "", "null":
		return f, nil
	case "Polygon":
		var rings [][]int
		if err := json.Unmarshal(g.Arcs, &rings); err != nil {
			return Feature{}, eris.Wrap(err, "decode polygon arcs")
		}
		polys = [][][]int{rings}
	case "MultiPolygon":
		if err := json.Unmarshal(g.Arcs, &polys); err != nil {
			return Feature{}, eris.Wrap(err, "decode multipolygon arcs")
		}
	default:
		return Feature{}, eris.Errorf("unsupported geometry type %q", g.Type)
	}

	coords := make([][][]geom.Coord, 0, len(polys))
	for _, rings := range polys {
		poly := make([][]geom.Coord, 0, len(rings))
		for _, ring := range rings {
			r, err := stitchRing(ring, arcs)
			if err != nil {
				return Feature{}, err
			}
			if len(r) > 0 {
				poly = append(poly, r)
			}
		}
		if len(poly) > 0 {
			coords = append(coords, poly)
		}
	}

	mp, err := geom.NewMultiPolygon(geom.XY).SetCoords(coords)
	if err != nil {
		return Feature{}, eris.Wrap(err, "build multipolygon")
	}
	f.Geometry = mp
	return f, nil
}

// stitchRing joins the referenced arcs into one ring. A negative index ~i
// walks arc i backwards. Consecutive arcs share their joint point, so the
// last point is dropped before each arc is appended.
func stitchRing(indexes []int, arcs [][]geom.Coord) ([]geom.Coord, error) {
	var points []geom.Coord
	for _, idx := range indexes {
		reversed := idx < 0
		if reversed {
			idx = ^idx
		}
		if idx >= len(arcs) {
			return nil, eris.Errorf("arc index %d out of range (%d arcs)", idx, len(arcs))
		}
		arc := arcs[idx]

		if len(points) > 0 {
			points = points[:len(points)-1]
		}
		if reversed {
			for k := len(arc) - 1; k >= 0; k-- {
				points = append(points, arc[k])
			}
		} else {
			points = append(points, arc...)
		}
	}

	if len(points) > 0 && len(points) < 4 {
		points = append(points, points[0])
	}
	return points, nil
}

// parseID accepts numeric and string ids. A missing id is 0.
func parseID(raw json.RawMessage) (int, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, nil
	}
	s = strings.Trim(s, `"`)
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "parse id %s", string(raw))
	}
	return int(f), nil
}

// Package geopath turns go-geom polygons into SVG path data.
package geopath

import (
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// Projection maps a planar coordinate to screen space.
type Projection interface {
	Project(x, y float64) (float64, float64)
}

// Identity passes coordinates through. The county topology is already in
// screen coordinates, so this is the default.
type Identity struct{}

// Project implements Projection.
func (Identity) Project(x, y float64) (float64, float64) { return x, y }

// Affine scales uniformly and then translates.
type Affine struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Project implements Projection.
func (a Affine) Project(x, y float64) (float64, float64) {
	return x*a.Scale + a.TranslateX, y*a.Scale + a.TranslateY
}

// Fit returns the Affine projection that fits bounds inside a width x height
// box with padding on every side, preserving aspect ratio and centering the
// result. Empty or zero-area bounds yield Identity.
func Fit(bounds *geom.Bounds, width, height, padding float64) Projection {
	if bounds == nil || bounds.IsEmpty() {
		return Identity{}
	}
	dx := bounds.Max(0) - bounds.Min(0)
	dy := bounds.Max(1) - bounds.Min(1)
	availW := width - 2*padding
	availH := height - 2*padding
	if dx <= 0 || dy <= 0 || availW <= 0 || availH <= 0 {
		return Identity{}
	}

	k := math.Min(availW/dx, availH/dy)
	return Affine{
		Scale:      k,
		TranslateX: padding + (availW-k*dx)/2 - k*bounds.Min(0),
		TranslateY: padding + (availH-k*dy)/2 - k*bounds.Min(1),
	}
}

// Bounds returns the combined bounds of the non-nil geometries.
func Bounds(geoms ...*geom.MultiPolygon) *geom.Bounds {
	b := geom.NewBounds(geom.XY)
	for _, g := range geoms {
		if g == nil || g.Empty() {
			continue
		}
		b.Extend(g)
	}
	return b
}

// Path returns SVG path data for mp: one "M...Z" subpath per ring, with
// coordinates rounded to precision decimal places. A nil or empty geometry
// gives an empty string.
func Path(p Projection, mp *geom.MultiPolygon, precision int) string {
	if mp == nil || mp.Empty() {
		return ""
	}
	if p == nil {
		p = Identity{}
	}

	var sb strings.Builder
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		for j := 0; j < poly.NumLinearRings(); j++ {
			coords := poly.LinearRing(j).Coords()
			// the closing point is implied by Z
			if n := len(coords); n > 1 && coords[0].Equal(geom.XY, coords[n-1]) {
				coords = coords[:n-1]
			}
			for k, c := range coords {
				if k == 0 {
					sb.WriteByte('M')
				} else {
					sb.WriteByte('L')
				}
				x, y := p.Project(c.X(), c.Y())
				sb.WriteString(formatCoord(x, precision))
				sb.WriteByte(',')
				sb.WriteString(formatCoord(y, precision))
			}
			if len(coords) > 0 {
				sb.WriteByte('Z')
			}
		}
	}
	return sb.String()
}

func formatCoord(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

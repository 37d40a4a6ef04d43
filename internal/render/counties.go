package render

import (
	"strconv"

	"github.com/sells-group/edu-choropleth/internal/geopath"
	"github.com/sells-group/edu-choropleth/internal/model"
	"github.com/sells-group/edu-choropleth/internal/svg"
	"github.com/sells-group/edu-choropleth/internal/topojson"
)

// NoDataFill is the fill written for counties without an education record.
const NoDataFill = "0"

// CountyShape is one drawn county and the handlers bound to it.
type CountyShape struct {
	FIPS      int
	Record    *model.EducationRecord // nil when unmatched
	Fill      string
	Education float64 // 0 when unmatched
	Tooltip   string
	Element   *svg.Element
}

// Matched reports whether an education record was found for the county.
func (s *CountyShape) Matched() bool {
	return s.Record != nil
}

// OnEnter is the pointer-enter handler: it shows t near the pointer with the
// county's content.
func (s *CountyShape) OnEnter(t *Tooltip, pageX, pageY int) {
	t.Show(s.Tooltip, s.Education, pageX, pageY)
}

// OnLeave is the pointer-leave handler: it hides t.
func (s *CountyShape) OnLeave(t *Tooltip) {
	t.Hide()
}

// DrawCounties appends one path per feature to a new group on the context's
// surface and returns the shapes in feature order.
func (c *Context) DrawCounties(features []topojson.Feature, idx model.EducationIndex) []*CountyShape {
	g := c.Surface.Append("g").SetAttr("id", "counties")

	shapes := make([]*CountyShape, 0, len(features))
	for _, f := range features {
		s := &CountyShape{FIPS: f.ID, Fill: NoDataFill}
		if rec, ok := idx.Lookup(f.ID); ok {
			s.Record = &rec
			s.Fill = c.Scale.ColorOf(rec.BachelorsOrHigher)
			s.Education = rec.BachelorsOrHigher
		}
		s.Tooltip = TooltipText(s.Record, c.Percent)

		s.Element = g.Append("path").
			SetAttr("class", "county").
			SetAttrInt("data-fips", f.ID).
			SetAttr("data-education", strconv.FormatFloat(s.Education, 'f', -1, 64)).
			SetAttr("fill", s.Fill).
			SetAttr("d", geopath.Path(c.Projection, f.Geometry, c.Options.Precision)).
			SetAttr("data-tooltip", s.Tooltip)

		shapes = append(shapes, s)
	}
	return shapes
}

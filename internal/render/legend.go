package render

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/edu-choropleth/internal/numfmt"
	"github.com/sells-group/edu-choropleth/internal/svg"
)

// Legend geometry.
const (
	LegendOffsetX   = 60
	LegendCellWidth = 40
	LegendCellH     = 10
	legendMargin    = 10
	legendBorder    = "black"
	legendFontSize  = "10px"
	legendLabelDX   = -5
)

// ErrLegendShape is returned when the number of label values is not one more
// than the number of colors.
var ErrLegendShape = eris.New("render: legend needs len(colors)+1 values")

// DrawLegend appends a horizontal legend group with id "legend" to surface:
// one bordered 40x10 swatch per color, left to right, near the bottom of a
// surface of the given height, and one label slot per value under the swatch
// edges. Interior labels (1..N-1) are always written; the first and last are
// written only when showFirstLast is set and are otherwise left empty.
//
// Each call appends a new group. Callers that redraw must remove the previous
// legend first.
func DrawLegend(surface *svg.Element, colors []string, values []float64, height int, format string, showFirstLast bool) error {
	if len(values) != len(colors)+1 {
		return eris.Wrapf(ErrLegendShape, "got %d colors and %d values", len(colors), len(values))
	}
	f, err := numfmt.Parse(format)
	if err != nil {
		return eris.Wrap(err, "render: legend format")
	}

	g := surface.Append("g").
		SetAttr("id", "legend").
		SetAttr("transform", fmt.Sprintf("translate(%d,%d)", LegendOffsetX, height-LegendCellH-legendMargin))

	for i, c := range colors {
		g.Append("rect").
			SetAttr("style", "fill:"+c+";stroke:"+legendBorder).
			SetAttrInt("width", LegendCellWidth).
			SetAttrInt("height", LegendCellH).
			SetAttrInt("x", i*LegendCellWidth).
			SetAttrInt("y", 0)
	}

	last := len(values) - 1
	for i, v := range values {
		label := ""
		if (i != 0 && i != last) || showFirstLast {
			label = f.Format(v)
		}
		g.Append("text").
			SetText(label).
			SetAttrInt("x", i*LegendCellWidth+legendLabelDX).
			SetAttrInt("y", LegendCellH+legendMargin).
			SetAttr("z-index", "-1").
			SetAttr("font-size", legendFontSize)
	}

	return nil
}

// Package render draws the choropleth: the color legend, one path per county
// and the tooltip model the county handlers share.
package render

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/edu-choropleth/internal/geopath"
	"github.com/sells-group/edu-choropleth/internal/loader"
	"github.com/sells-group/edu-choropleth/internal/model"
	"github.com/sells-group/edu-choropleth/internal/numfmt"
	"github.com/sells-group/edu-choropleth/internal/scale"
	"github.com/sells-group/edu-choropleth/internal/svg"
)

// Options configures a render pass.
type Options struct {
	Width          int
	Height         int
	Padding        int
	Colors         []string // len scale.Bins, light to dark
	LegendFormat   string
	TooltipFormat  string
	ShowFirstLast  bool
	Fit            bool // scale the shapes into the surface instead of drawing them as-is
	Precision      int  // decimal places in path data
	TooltipOffsetX int
	TooltipOffsetY int
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Width:          1000,
		Height:         680,
		Padding:        60,
		Colors:         scale.Greens9,
		LegendFormat:   ".1%",
		TooltipFormat:  ".1%",
		Precision:      3,
		TooltipOffsetX: -90,
		TooltipOffsetY: -60,
	}
}

// Context carries everything a render pass shares between the legend, the
// counties and their handlers.
type Context struct {
	Options    Options
	Surface    *svg.Element
	Tooltip    *Tooltip
	Scale      *scale.Threshold
	Projection geopath.Projection
	Percent    numfmt.Formatter
}

// Result is a finished render.
type Result struct {
	Surface   *svg.Element
	Tooltip   *Tooltip
	Domain    *scale.Domain
	Scale     *scale.Threshold
	Shapes    []*CountyShape
	Unmatched int
}

// Render draws ds onto a fresh surface. Everything that can fail is checked
// before the first element is appended, so an error never leaves a partial
// drawing behind.
func Render(ds *loader.Dataset, opts Options) (*Result, error) {
	if ds == nil {
		return nil, eris.New("render: no dataset")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, eris.Errorf("render: invalid size %dx%d", opts.Width, opts.Height)
	}

	domain, err := scale.NewDomain(model.BachelorsValues(ds.Records))
	if err != nil {
		return nil, eris.Wrap(err, "render: color domain")
	}
	threshold, err := scale.NewThreshold(domain, opts.Colors)
	if err != nil {
		return nil, eris.Wrap(err, "render: color scale")
	}
	pct, err := numfmt.Parse(opts.TooltipFormat)
	if err != nil {
		return nil, eris.Wrap(err, "render: tooltip format")
	}
	if _, err := numfmt.Parse(opts.LegendFormat); err != nil {
		return nil, eris.Wrap(err, "render: legend format")
	}

	ctx := &Context{
		Options:    opts,
		Surface:    svg.NewDocument(opts.Width, opts.Height),
		Tooltip:    NewTooltip(opts.TooltipOffsetX, opts.TooltipOffsetY),
		Scale:      threshold,
		Projection: projection(ds, opts),
		Percent:    pct,
	}

	if err := DrawLegend(ctx.Surface, threshold.Colors, domain.LegendValues(), opts.Height, opts.LegendFormat, opts.ShowFirstLast); err != nil {
		return nil, err
	}
	shapes := ctx.DrawCounties(ds.Features, ds.Index())

	unmatched := 0
	for _, s := range shapes {
		if !s.Matched() {
			unmatched++
			zap.L().Debug("county without education record", zap.Int("fips", s.FIPS))
		}
	}

	zap.L().Info("map rendered",
		zap.String("component", "render"),
		zap.Int("counties", len(shapes)),
		zap.Int("unmatched", unmatched),
		zap.Float64("min", domain.Min),
		zap.Float64("max", domain.Max),
		zap.Bool("degenerate", domain.Degenerate()),
	)

	return &Result{
		Surface:   ctx.Surface,
		Tooltip:   ctx.Tooltip,
		Domain:    domain,
		Scale:     threshold,
		Shapes:    shapes,
		Unmatched: unmatched,
	}, nil
}

// projection fits the shapes into the area above the legend when opts.Fit is
// set; otherwise the pre-projected coordinates are used unchanged.
func projection(ds *loader.Dataset, opts Options) geopath.Projection {
	if !opts.Fit {
		return geopath.Identity{}
	}
	geoms := make([]*geom.MultiPolygon, 0, len(ds.Features))
	for _, f := range ds.Features {
		geoms = append(geoms, f.Geometry)
	}
	bounds := geopath.Bounds(geoms...)
	mapHeight := float64(opts.Height - LegendCellH - 2*legendMargin)
	return geopath.Fit(bounds, float64(opts.Width), mapHeight, float64(opts.Padding)/2)
}

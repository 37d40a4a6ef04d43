package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/edu-choropleth/internal/config"
	"github.com/sells-group/edu-choropleth/internal/fetcher"
	"github.com/sells-group/edu-choropleth/internal/loader"
	"github.com/sells-group/edu-choropleth/internal/render"
	"github.com/sells-group/edu-choropleth/internal/scale"
)

// runLogger returns the global logger tagged with a fresh run ID.
func runLogger(command string) *zap.Logger {
	return zap.L().With(
		zap.String("command", command),
		zap.String("run_id", uuid.NewString()),
	)
}

func newFetcher(c *config.Config) *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent: c.Fetch.UserAgent,
		Timeout:   time.Duration(c.Fetch.TimeoutSecs) * time.Second,
		Rate:      rate.Limit(c.Fetch.RatePerSec),
	})
}

func sources(c *config.Config) loader.Sources {
	return loader.Sources{
		EducationURL:   c.Data.EducationURL,
		TopologyURL:    c.Data.TopologyURL,
		TopologyObject: c.Data.TopologyObject,
	}
}

// palette resolves the configured palette name, reading the palette file
// first when one is set.
func palette(c *config.Config) ([]string, error) {
	palettes := scale.BuiltinPalettes()
	if c.Render.PaletteFile != "" {
		p, err := scale.LoadPalettes(c.Render.PaletteFile)
		if err != nil {
			return nil, err
		}
		palettes = p
	}
	return palettes.Get(c.Render.Palette)
}

func renderOptions(c *config.Config) (render.Options, error) {
	colors, err := palette(c)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Width:          c.Render.Width,
		Height:         c.Render.Height,
		Padding:        c.Render.Padding,
		Colors:         colors,
		LegendFormat:   c.Render.LegendFormat,
		TooltipFormat:  c.Render.TooltipFormat,
		ShowFirstLast:  c.Render.ShowFirstLast,
		Fit:            c.Render.Fit,
		Precision:      c.Render.Precision,
		TooltipOffsetX: c.Render.TooltipOffsetX,
		TooltipOffsetY: c.Render.TooltipOffsetY,
	}, nil
}

// loadAndRender fetches both datasets and draws the map. Nothing is drawn
// when loading fails.
func loadAndRender(ctx context.Context, c *config.Config, f fetcher.Fetcher, log *zap.Logger) (*loader.Dataset, *render.Result, error) {
	opts, err := renderOptions(c)
	if err != nil {
		return nil, nil, err
	}

	ds, err := loader.Load(ctx, f, sources(c))
	if err != nil {
		return nil, nil, eris.Wrap(err, "load datasets")
	}

	res, err := render.Render(ds, opts)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("map drawn",
		zap.Int("shapes", len(res.Shapes)),
		zap.Strings("colors", res.Scale.Colors),
	)
	return ds, res, nil
}

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/edu-choropleth/internal/config"
	"github.com/sells-group/edu-choropleth/internal/page"
)

var (
	renderOutput  string
	renderWidth   int
	renderHeight  int
	renderPalette string
	renderFit     bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the choropleth to an HTML file",
	RunE:  runRender,
}

func init() {
	addRenderFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output HTML path (default from config)")
	cmd.Flags().IntVar(&renderWidth, "width", 0, "surface width (default from config)")
	cmd.Flags().IntVar(&renderHeight, "height", 0, "surface height (default from config)")
	cmd.Flags().StringVar(&renderPalette, "palette", "", "color palette name (default from config)")
	cmd.Flags().BoolVar(&renderFit, "fit", false, "scale county outlines to the surface")
}

// applyRenderFlags overrides configuration with any flags that were set.
func applyRenderFlags(c *config.Config) {
	if renderOutput != "" {
		c.Output.Path = renderOutput
	}
	if renderWidth > 0 {
		c.Render.Width = renderWidth
	}
	if renderHeight > 0 {
		c.Render.Height = renderHeight
	}
	if renderPalette != "" {
		c.Render.Palette = renderPalette
	}
	if renderFit {
		c.Render.Fit = true
	}
}

func runRender(cmd *cobra.Command, _ []string) error {
	applyRenderFlags(cfg)
	if err := cfg.Validate("render"); err != nil {
		return err
	}

	log := runLogger("render")
	ds, res, err := loadAndRender(cmd.Context(), cfg, newFetcher(cfg), log)
	if err != nil {
		log.Error("render failed", zap.Error(err))
		return err
	}

	p, err := page.FromResult(res, cfg.Output.Title, cfg.Output.Description)
	if err != nil {
		return err
	}
	if err := page.Write(cfg.Output.Path, p); err != nil {
		return err
	}

	log.Info("map written",
		zap.String("path", cfg.Output.Path),
		zap.Int("counties", len(ds.Features)),
		zap.Int("unmatched", res.Unmatched),
	)
	return nil
}

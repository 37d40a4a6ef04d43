package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/edu-choropleth/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the joined county data as GeoJSON, shapefile or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		if err := cfg.Validate("export"); err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = "counties" + format.Ext()
		}

		log := runLogger("export")
		ds, res, err := loadAndRender(cmd.Context(), cfg, newFetcher(cfg), log)
		if err != nil {
			return err
		}

		counties := export.Counties(ds, res)
		if err := export.Write(format, out, counties, res.Domain, res.Scale); err != nil {
			return err
		}

		log.Info("counties exported",
			zap.String("format", string(format)),
			zap.String("path", out),
			zap.Int("counties", len(counties)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.GeoJSON), "output format: geojson, shp or xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (default counties.<format>)")
	rootCmd.AddCommand(exportCmd)
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/edu-choropleth/internal/loader"
	"github.com/sells-group/edu-choropleth/internal/model"
	"github.com/sells-group/edu-choropleth/internal/numfmt"
	"github.com/sells-group/edu-choropleth/internal/scale"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the color domain, bin boundaries and per-bin county counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("stats"); err != nil {
			return err
		}
		colors, err := palette(cfg)
		if err != nil {
			return err
		}

		ds, err := loader.Load(cmd.Context(), newFetcher(cfg), sources(cfg))
		if err != nil {
			return err
		}
		s, err := computeStats(ds, colors)
		if err != nil {
			return err
		}
		formatStats(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

type binStat struct {
	Index    int
	From     float64
	To       float64
	Color    string
	Counties int
}

type domainStats struct {
	Domain    *scale.Domain
	Bins      []binStat
	Counties  int
	Unmatched int
}

func computeStats(ds *loader.Dataset, colors []string) (*domainStats, error) {
	d, err := scale.NewDomain(model.BachelorsValues(ds.Records))
	if err != nil {
		return nil, err
	}
	th, err := scale.NewThreshold(d, colors)
	if err != nil {
		return nil, err
	}

	s := &domainStats{Domain: d, Counties: len(ds.Features)}
	for i, c := range th.Colors {
		from, to := d.BinRange(i)
		s.Bins = append(s.Bins, binStat{Index: i, From: from, To: to, Color: c})
	}

	idx := ds.Index()
	for _, f := range ds.Features {
		rec, ok := idx.Lookup(f.ID)
		if !ok {
			s.Unmatched++
			continue
		}
		s.Bins[th.Bin(rec.BachelorsOrHigher)].Counties++
	}
	return s, nil
}

func formatStats(out io.Writer, s *domainStats) {
	pct := numfmt.MustParse(".1f")

	_, _ = fmt.Fprintf(out, "min: %s  max: %s  step: %s\n",
		pct.Format(s.Domain.Min), pct.Format(s.Domain.Max), numfmt.MustParse(".3f").Format(s.Domain.Step))
	_, _ = fmt.Fprintf(out, "counties: %d  unmatched: %d\n\n", s.Counties, s.Unmatched)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "BIN\tFROM\tTO\tCOLOR\tCOUNTIES")
	_, _ = fmt.Fprintln(w, "---\t----\t--\t-----\t--------")
	for _, b := range s.Bins {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", b.Index, pct.Format(b.From), pct.Format(b.To), b.Color, b.Counties)
	}
	_ = w.Flush()
}

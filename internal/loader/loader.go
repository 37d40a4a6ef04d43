// Package loader fetches the education and topology datasets concurrently and
// joins them. Either both arrive decoded or the load fails as a whole.
package loader

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/edu-choropleth/internal/fetcher"
	"github.com/sells-group/edu-choropleth/internal/model"
	"github.com/sells-group/edu-choropleth/internal/topojson"
)

// ErrNoRecords is returned when the education dataset is empty.
var ErrNoRecords = eris.New("loader: education dataset is empty")

// Sources names the two datasets.
type Sources struct {
	EducationURL   string
	TopologyURL    string
	TopologyObject string // geometry collection holding the counties
}

// Dataset is the joined result of a successful load.
type Dataset struct {
	Records  []model.EducationRecord
	Topology *topojson.Topology
	Features []topojson.Feature
}

// Index returns the records keyed by FIPS.
func (d *Dataset) Index() model.EducationIndex {
	return model.NewEducationIndex(d.Records)
}

// Load fetches both datasets in parallel and waits for both. The first
// failure cancels the other fetch and is returned; no partial dataset is
// ever returned.
func Load(ctx context.Context, f fetcher.Fetcher, src Sources) (*Dataset, error) {
	log := zap.L().With(zap.String("component", "loader"))
	start := time.Now()

	var (
		records []model.EducationRecord
		topo    *topojson.Topology
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = fetchEducation(gctx, f, src.EducationURL)
		if err != nil {
			return eris.Wrap(err, "loader: education")
		}
		log.Debug("education loaded", zap.Int("records", len(records)))
		return nil
	})
	g.Go(func() error {
		var err error
		topo, err = fetchTopology(gctx, f, src.TopologyURL)
		if err != nil {
			return eris.Wrap(err, "loader: topology")
		}
		log.Debug("topology loaded", zap.Int("arcs", len(topo.Arcs)))
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("load failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	object := src.TopologyObject
	if object == "" {
		object = "counties"
	}
	features, err := topo.Features(object)
	if err != nil {
		return nil, eris.Wrap(err, "loader: topology")
	}

	log.Info("datasets loaded",
		zap.Int("records", len(records)),
		zap.Int("features", len(features)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Dataset{Records: records, Topology: topo, Features: features}, nil
}

func fetchEducation(ctx context.Context, f fetcher.Fetcher, url string) ([]model.EducationRecord, error) {
	body, err := f.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	records, err := fetcher.ReadJSONArray[model.EducationRecord](ctx, body)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

func fetchTopology(ctx context.Context, f fetcher.Fetcher, url string) (*topojson.Topology, error) {
	body, err := f.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	topo, err := fetcher.DecodeJSONObject[topojson.Topology](body)
	if err != nil {
		return nil, err
	}
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	return topo, nil
}

package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sells-group/edu-choropleth/internal/config"
)

const educationJSON = `[
  {"fips":1001,"state":"AL","area_name":"Autauga County","bachelorsOrHigher":20.1},
  {"fips":1003,"state":"AL","area_name":"Baldwin County","bachelorsOrHigher":50},
  {"fips":1005,"state":"AL","area_name":"Barbour County","bachelorsOrHigher":10}
]`

// three unit squares; 9999 has no education record
const countiesJSON = `{
  "type": "Topology",
  "arcs": [
    [[0,0],[1,0],[1,1],[0,1],[0,0]],
    [[1,0],[2,0],[2,1],[1,1],[1,0]],
    [[2,0],[3,0],[3,1],[2,1],[2,0]],
    [[3,0],[4,0],[4,1],[3,1],[3,0]]
  ],
  "objects": {
    "counties": {"type": "GeometryCollection", "geometries": [
      {"type": "Polygon", "id": 1001, "arcs": [[0]]},
      {"type": "Polygon", "id": 1003, "arcs": [[1]]},
      {"type": "Polygon", "id": 1005, "arcs": [[2]]},
      {"type": "Polygon", "id": 9999, "arcs": [[3]]}
    ]}
  }
}`

func dataServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/edu.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(educationJSON))
	})
	mux.HandleFunc("/counties.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(countiesJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// testConfig returns a config pointing at srv and writing into a temp dir,
// and installs it as the package config for the duration of the test.
func testConfig(t *testing.T, srv *httptest.Server) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.Data.EducationURL = srv.URL + "/edu.json"
	c.Data.TopologyURL = srv.URL + "/counties.json"
	c.Data.TopologyObject = "counties"
	c.Fetch.TimeoutSecs = 5
	c.Fetch.RatePerSec = 1000
	c.Render.Width = 1000
	c.Render.Height = 680
	c.Render.Padding = 60
	c.Render.Palette = "greens"
	c.Render.LegendFormat = ".1%"
	c.Render.TooltipFormat = ".1%"
	c.Render.Precision = 3
	c.Render.TooltipOffsetX = -90
	c.Render.TooltipOffsetY = -60
	c.Output.Path = filepath.Join(t.TempDir(), "map.html")
	c.Output.Title = "Test Map"
	c.Server.Port = 8080
	c.Server.AllowedOrigins = []string{"*"}

	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
	return c
}

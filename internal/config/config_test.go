package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.Data.EducationURL, "for_user_education.json")
	assert.Contains(t, cfg.Data.TopologyURL, "counties.json")
	assert.Equal(t, "counties", cfg.Data.TopologyObject)
	assert.Equal(t, 60, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, "edu-choropleth/1.0", cfg.Fetch.UserAgent)
	assert.InDelta(t, 5.0, cfg.Fetch.RatePerSec, 0.001)
	assert.Equal(t, 1000, cfg.Render.Width)
	assert.Equal(t, 680, cfg.Render.Height)
	assert.Equal(t, 60, cfg.Render.Padding)
	assert.Equal(t, "greens", cfg.Render.Palette)
	assert.Equal(t, ".1%", cfg.Render.LegendFormat)
	assert.False(t, cfg.Render.ShowFirstLast)
	assert.Equal(t, -90, cfg.Render.TooltipOffsetX)
	assert.Equal(t, -60, cfg.Render.TooltipOffsetY)
	assert.Equal(t, "choropleth.html", cfg.Output.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
render:
  width: 1200
  palette: blues
  show_first_last: true
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1200, cfg.Render.Width)
	assert.Equal(t, "blues", cfg.Render.Palette)
	assert.True(t, cfg.Render.ShowFirstLast)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults still apply for unset values
	assert.Equal(t, 680, cfg.Render.Height)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
render:
  palette: blues
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CHORO_RENDER_PALETTE", "greens")
	t.Setenv("CHORO_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "greens", cfg.Render.Palette)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("CHORO_SERVER_PORT", "3000")
	t.Setenv("CHORO_DATA_TOPOLOGY_OBJECT", "states")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "states", cfg.Data.TopologyObject)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("render: [unclosed"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Data.EducationURL = "https://example.test/edu.json"
	cfg.Data.TopologyURL = "https://example.test/counties.json"
	cfg.Data.TopologyObject = "counties"
	cfg.Fetch.TimeoutSecs = 60
	cfg.Render.Width = 1000
	cfg.Render.Height = 680
	cfg.Render.Precision = 3
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateRender_AllPresent(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("render"))
	assert.NoError(t, cfg.Validate("export"))
	assert.NoError(t, cfg.Validate("stats"))
}

func TestValidateRender_MissingFields(t *testing.T) {
	cfg := validDefaults()
	cfg.Data.EducationURL = ""
	cfg.Data.TopologyURL = ""
	cfg.Render.Width = 0

	err := cfg.Validate("render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.education_url is required")
	assert.Contains(t, err.Error(), "data.topology_url is required")
	assert.Contains(t, err.Error(), "render.width and render.height must be > 0")
}

func TestValidateStats_IgnoresRenderSize(t *testing.T) {
	cfg := validDefaults()
	cfg.Render.Width = 0

	assert.NoError(t, cfg.Validate("stats"))
}

func TestValidateNegativeTimeout(t *testing.T) {
	cfg := validDefaults()
	cfg.Fetch.TimeoutSecs = -1

	err := cfg.Validate("render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch.timeout_secs")
}

func TestValidateServe_ValidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 9090

	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

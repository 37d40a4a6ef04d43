package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Render RenderConfig `yaml:"render" mapstructure:"render"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig names the two remote datasets.
type DataConfig struct {
	EducationURL   string `yaml:"education_url" mapstructure:"education_url"`
	TopologyURL    string `yaml:"topology_url" mapstructure:"topology_url"`
	TopologyObject string `yaml:"topology_object" mapstructure:"topology_object"`
}

// FetchConfig configures the HTTP fetcher. TimeoutSecs of 0 disables the timeout.
type FetchConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// RenderConfig configures the map, legend and tooltip.
type RenderConfig struct {
	Width          int    `yaml:"width" mapstructure:"width"`
	Height         int    `yaml:"height" mapstructure:"height"`
	Padding        int    `yaml:"padding" mapstructure:"padding"`
	Palette        string `yaml:"palette" mapstructure:"palette"`
	PaletteFile    string `yaml:"palette_file" mapstructure:"palette_file"`
	LegendFormat   string `yaml:"legend_format" mapstructure:"legend_format"`
	TooltipFormat  string `yaml:"tooltip_format" mapstructure:"tooltip_format"`
	ShowFirstLast  bool   `yaml:"show_first_last" mapstructure:"show_first_last"`
	Fit            bool   `yaml:"fit" mapstructure:"fit"`
	Precision      int    `yaml:"precision" mapstructure:"precision"`
	TooltipOffsetX int    `yaml:"tooltip_offset_x" mapstructure:"tooltip_offset_x"`
	TooltipOffsetY int    `yaml:"tooltip_offset_y" mapstructure:"tooltip_offset_y"`
}

// OutputConfig configures the generated page.
type OutputConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	Title       string `yaml:"title" mapstructure:"title"`
	Description string `yaml:"description" mapstructure:"description"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CHORO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.education_url", "https://cdn.freecodecamp.org/testable-projects-fcc/data/choropleth_map/for_user_education.json")
	v.SetDefault("data.topology_url", "https://cdn.freecodecamp.org/testable-projects-fcc/data/choropleth_map/counties.json")
	v.SetDefault("data.topology_object", "counties")
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.user_agent", "edu-choropleth/1.0")
	v.SetDefault("fetch.rate_per_sec", 5)
	v.SetDefault("render.width", 1000)
	v.SetDefault("render.height", 680)
	v.SetDefault("render.padding", 60)
	v.SetDefault("render.palette", "greens")
	v.SetDefault("render.legend_format", ".1%")
	v.SetDefault("render.tooltip_format", ".1%")
	v.SetDefault("render.show_first_last", false)
	v.SetDefault("render.fit", false)
	v.SetDefault("render.precision", 3)
	v.SetDefault("render.tooltip_offset_x", -90)
	v.SetDefault("render.tooltip_offset_y", -60)
	v.SetDefault("output.path", "choropleth.html")
	v.SetDefault("output.title", "United States Educational Attainment")
	v.SetDefault("output.description", "Percentage of adults age 25 and older with a bachelor's degree or higher (2010-2014)")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that required fields are present for the given command mode.
// Modes: "render", "export", "stats" and "serve".
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Data.EducationURL == "" {
		problems = append(problems, "data.education_url is required")
	}
	if c.Data.TopologyURL == "" {
		problems = append(problems, "data.topology_url is required")
	}
	if c.Data.TopologyObject == "" {
		problems = append(problems, "data.topology_object is required")
	}
	if c.Fetch.TimeoutSecs < 0 {
		problems = append(problems, "fetch.timeout_secs must be >= 0")
	}
	if c.Fetch.RatePerSec < 0 {
		problems = append(problems, "fetch.rate_per_sec must be >= 0")
	}

	switch mode {
	case "render", "export", "stats":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if mode != "stats" {
		if c.Render.Width <= 0 || c.Render.Height <= 0 {
			problems = append(problems, "render.width and render.height must be > 0")
		}
		if c.Render.Precision < 0 || c.Render.Precision > 10 {
			problems = append(problems, "render.precision must be between 0 and 10")
		}
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

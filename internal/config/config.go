// Package config defines the scoreboard configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

// Report formats understood by the renderers.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// OutputDir is where per-round and summary reports are written.
	OutputDir string `koanf:"output_dir"`

	// Format is the report format: text, json or yaml.
	Format string `koanf:"format"`

	// TopN is how many leading entries are logged after each round.
	TopN int `koanf:"top_n"`

	// DisplayFlags and DisplayCountries are passed through to the renderers.
	DisplayFlags     bool `koanf:"display_flags"`
	DisplayCountries bool `koanf:"display_countries"`

	// MainColor and AccentColor are header metadata for renderers (#rgb or #rrggbb).
	MainColor   string `koanf:"main_color"`
	AccentColor string `koanf:"accent_color"`

	// Delimiter forces the input field delimiter. Empty means sniff it
	// from the first line.
	Delimiter string `koanf:"delimiter"`

	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string `koanf:"metrics_file"`

	// MetricsNamespace and MetricsSubsystem prefix every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsBuckets are the round latency histogram buckets in
	// milliseconds. Empty keeps the built-in buckets.
	MetricsBuckets []float64 `koanf:"metrics_buckets"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		OutputDir:   "Output",
		Format:      FormatText,
		TopN:        5,
		MainColor:   "#2f292b",
		AccentColor: "#009688",

		MetricsNamespace: "scoreboard",
		MetricsSubsystem: "contest",
	}
}

package config

// ServiceConfig is the outer, ambient configuration for the audiohal
// service: where to find the audio routing document, which sound card
// to open, and how to expose diagnostics. It is loaded with LoadConfig
// (CLI flags > env vars > TOML file) and is distinct from the XML
// audio configuration the engine itself parses.
type ServiceConfig struct {
	Config string `toml:"-" help:"Path to a TOML config file"`

	AudioConfig string `toml:"audio.config" env:"AUDIO_CONFIG" help:"Path to the audio routing XML document"`
	ConfigDir   string `toml:"audio.config_dir" env:"AUDIO_CONFIG_DIR" help:"Default directory for resolving relative audio config paths"`
	Card        int    `toml:"audio.card" env:"AUDIO_CARD" help:"ALSA card number to open"`

	LogLevel  string `toml:"logging.level" env:"LOG_LEVEL" help:"Log level: debug, info, warn, error"`
	LogFormat string `toml:"logging.format" env:"LOG_FORMAT" help:"Log format: text or json"`

	HTTPAddr    string `toml:"http.addr" env:"HTTP_ADDR" help:"Address for the debug HTTP API"`
	MetricsAddr string `toml:"metrics.addr" env:"METRICS_ADDR" help:"Address for the Prometheus metrics endpoint"`
}

// Defaults returns a ServiceConfig populated with the engine's defaults.
func Defaults() ServiceConfig {
	return ServiceConfig{
		ConfigDir:   "/etc/audiohal",
		Card:        0,
		LogLevel:    "info",
		LogFormat:   "text",
		HTTPAddr:    ":8686",
		MetricsAddr: ":9686",
	}
}

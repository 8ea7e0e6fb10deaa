package config

const (
	defaultDirection             = "forwards"
	defaultLogFormat             = "console"
	defaultLogLevel              = "warn"
	defaultDialTimeoutSeconds    = 2
	defaultRequestTimeoutSeconds = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scales: Scales{
			Direction: defaultDirection,
		},
		Niri: Niri{
			DialTimeoutSeconds:    defaultDialTimeoutSeconds,
			RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

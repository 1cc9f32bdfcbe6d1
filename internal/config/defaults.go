package config

const (
	defaultQuality   = 3.0
	defaultStateDir  = "~/.local/share/vorbify"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Conversion: Conversion{
			Quality:      defaultQuality,
			VerifyOutput: true,
		},
		Decoders: map[string]string{},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

// DefaultPath is the configuration file read by every command.
const DefaultPath = ".toldyou.yml"

// DefaultWidgetVersion is used when no build identifier is available.
const DefaultWidgetVersion = "1.0.0"

// DefaultCORSOrigins allows any site to call the public API, since the
// loader runs on merchants' own domains.
var DefaultCORSOrigins = []string{"*"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        5000,
			CORSOrigins: append([]string(nil), DefaultCORSOrigins...),
		},
		Database: DatabaseConfig{
			Path: "toldyou.db",
		},
		Mail: MailConfig{
			Provider: "log",
			From:     "ToldYou Button <noreply@toldyou.example>",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// versionEnvVars are consulted in order when widget.version is unset.
var versionEnvVars = []string{"WIDGET_VERSION", "WIDGET_BUILD_ID", "COMMIT_SHA"}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: TOLDYOU_SERVER__PORT sets server.port.
const EnvPrefix = "TOLDYOU_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TOLDYOU_*), then fills remaining secrets
// from their conventional variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyFallbacks(cfg)
	return cfg, nil
}

// envKey maps TOLDYOU_SERVER__CORS_ORIGINS=a,b to server.cors_origins=[a b].
func envKey(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if key == "server.cors_origins" {
		return key, splitAndTrim(value)
	}
	return key, value
}

func applyFallbacks(cfg *Config) {
	if cfg.Shopify.APISecret == "" {
		cfg.Shopify.APISecret = os.Getenv("SHOPIFY_API_SECRET")
	}
	if cfg.Mail.APIKey == "" {
		cfg.Mail.APIKey = os.Getenv("RESEND_API_KEY")
	}
	if cfg.Widget.Version == "" {
		cfg.Widget.Version = ResolveWidgetVersion()
	}
}

// ResolveWidgetVersion returns the first non-empty of WIDGET_VERSION,
// WIDGET_BUILD_ID and COMMIT_SHA, or DefaultWidgetVersion.
func ResolveWidgetVersion() string {
	for _, name := range versionEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return DefaultWidgetVersion
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

var validMailProviders = map[string]bool{
	"log":    true,
	"resend": true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.PublicURL != "" &&
		!strings.HasPrefix(c.Server.PublicURL, "http://") &&
		!strings.HasPrefix(c.Server.PublicURL, "https://") {
		return fmt.Errorf("server.public_url %q must start with http:// or https://", c.Server.PublicURL)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if !validMailProviders[c.Mail.Provider] {
		return fmt.Errorf("invalid mail.provider %q: must be one of log, resend", c.Mail.Provider)
	}
	if c.Mail.Provider == "resend" {
		if c.Mail.APIKey == "" {
			return fmt.Errorf("mail.api_key (or RESEND_API_KEY) is required for the resend provider")
		}
		if c.Mail.From == "" {
			return fmt.Errorf("mail.from is required for the resend provider")
		}
	}

	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be json or console", c.Log.Format)
	}

	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}

package config

// Config is the top-level toldyou configuration, corresponding to .toldyou.yml.
type Config struct {
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
	Mail     MailConfig     `yaml:"mail" koanf:"mail"`
	Shopify  ShopifyConfig  `yaml:"shopify" koanf:"shopify"`
	Widget   WidgetConfig   `yaml:"widget" koanf:"widget"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port int    `yaml:"port" koanf:"port"`
	// PublicURL is the externally visible base URL used in generated embed
	// code. When empty it is derived from each request.
	PublicURL   string   `yaml:"public_url,omitempty" koanf:"public_url"`
	CORSOrigins []string `yaml:"cors_origins" koanf:"cors_origins"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// MailConfig selects how code emails are delivered.
type MailConfig struct {
	Provider string `yaml:"provider" koanf:"provider"`
	APIKey   string `yaml:"api_key,omitempty" koanf:"api_key"`
	From     string `yaml:"from" koanf:"from"`
}

type ShopifyConfig struct {
	APISecret string `yaml:"api_secret,omitempty" koanf:"api_secret"`
}

// WidgetConfig controls the published loader script.
type WidgetConfig struct {
	// Version is appended as ?v= to versioned script URLs.
	Version string `yaml:"version,omitempty" koanf:"version"`
}

type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

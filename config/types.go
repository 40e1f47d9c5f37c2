package config

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Profile ProfileConfig `mapstructure:"profile"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds streaming service connection details
type APIConfig struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SessionConfig controls where the session credential is persisted.
// An empty path keeps the session in memory only.
type SessionConfig struct {
	Path string `mapstructure:"path"`
}

// CatalogConfig holds catalog paging settings
type CatalogConfig struct {
	HomePageSize     int `mapstructure:"home_page_size"`
	CategoryPageSize int `mapstructure:"category_page_size"`
}

// ProfileConfig holds profile listing paging settings
type ProfileConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:            "https://stream.example.com/api",
			TimeoutSeconds: 10,
		},
		Catalog: CatalogConfig{
			HomePageSize:     6,
			CategoryPageSize: 18,
		},
		Profile: ProfileConfig{
			PageSize: 12,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing api url",
			mutate:  func(c *Config) { c.API.URL = "" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.TimeoutSeconds = 0 },
			wantErr: true,
		},
		{
			name:    "zero home page size",
			mutate:  func(c *Config) { c.Catalog.HomePageSize = 0 },
			wantErr: true,
		},
		{
			name:    "zero profile page size",
			mutate:  func(c *Config) { c.Profile.PageSize = 0 },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

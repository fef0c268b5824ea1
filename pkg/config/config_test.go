package config

import (
	"testing"
	"time"
)

// clearEnv blanks variables that would leak into Load from the host.
// viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"LAPORINFRA_SERVER_ENVIRONMENT",
		"LAPORINFRA_API_BASE_URL",
		"LAPORINFRA_API_TIMEOUT",
		"LAPORINFRA_STORE_DRIVER",
		"LAPORINFRA_STORE_DSN",
		"LAPORINFRA_UPLOAD_POLICY",
		"LAPORINFRA_UPLOAD_MAX_FILES",
		"LAPORINFRA_RABBITMQ_ENABLED",
		"LAPORINFRA_RABBITMQ_URL",
	} {
		t.Setenv(v, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("form-gateway")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Environment != EnvDevelopment {
		t.Errorf("Server.Environment = %v, want development", cfg.Server.Environment)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port = %v, want 8090", cfg.Server.Port)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.Geo.Timeout != 10*time.Second || cfg.Geo.MaximumAge != time.Minute {
		t.Errorf("Geo timeouts = %v/%v, want 10s/1m", cfg.Geo.Timeout, cfg.Geo.MaximumAge)
	}
	if cfg.Upload.MaxFileSize != 5*1024*1024 {
		t.Errorf("Upload.MaxFileSize = %v, want 5MB", cfg.Upload.MaxFileSize)
	}
	if cfg.Store.Key != "reporter-session" {
		t.Errorf("Store.Key = %v, want reporter-session", cfg.Store.Key)
	}
	if cfg.Mapping.AllowFallback {
		t.Error("Mapping.AllowFallback should default to false")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAPORINFRA_API_BASE_URL", "https://api.example.go.id")
	t.Setenv("LAPORINFRA_UPLOAD_POLICY", "truncate")
	t.Setenv("LAPORINFRA_UPLOAD_MAX_FILES", "2")

	cfg, err := Load("laporinfra")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://api.example.go.id" {
		t.Errorf("API.BaseURL = %v", cfg.API.BaseURL)
	}
	if cfg.Upload.Policy != "truncate" {
		t.Errorf("Upload.Policy = %v, want truncate", cfg.Upload.Policy)
	}
	if cfg.Upload.MaxFiles != 2 {
		t.Errorf("Upload.MaxFiles = %v, want 2", cfg.Upload.MaxFiles)
	}
}

func TestAPIConfig_Endpoint(t *testing.T) {
	tests := []struct {
		name   string
		config APIConfig
		path   string
		want   string
	}{
		{
			name:   "plain base",
			config: APIConfig{BaseURL: "https://api.example.go.id", Version: "v1"},
			path:   "bina-marga/reports",
			want:   "https://api.example.go.id/api/v1/bina-marga/reports",
		},
		{
			name:   "trailing and leading slashes",
			config: APIConfig{BaseURL: "https://api.example.go.id/", Version: "/v1/"},
			path:   "/tata-ruang/reports",
			want:   "https://api.example.go.id/api/v1/tata-ruang/reports",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.Endpoint(tt.path); got != tt.want {
				t.Errorf("Endpoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      APIConfig
		environment string
		wantErr     bool
	}{
		{
			name:        "development allows localhost http",
			config:      APIConfig{BaseURL: "http://localhost:8000", Timeout: time.Second},
			environment: EnvDevelopment,
		},
		{
			name:        "production rejects http",
			config:      APIConfig{BaseURL: "http://api.example.go.id", Timeout: time.Second},
			environment: EnvProduction,
			wantErr:     true,
		},
		{
			name:        "production rejects localhost",
			config:      APIConfig{BaseURL: "https://localhost", Timeout: time.Second},
			environment: EnvProduction,
			wantErr:     true,
		},
		{
			name:        "production accepts https host",
			config:      APIConfig{BaseURL: "https://api.example.go.id", Timeout: time.Second},
			environment: EnvProduction,
		},
		{
			name:        "missing scheme",
			config:      APIConfig{BaseURL: "api.example.go.id", Timeout: time.Second},
			environment: EnvDevelopment,
			wantErr:     true,
		},
		{
			name:        "zero timeout",
			config:      APIConfig{BaseURL: "http://localhost:8000"},
			environment: EnvDevelopment,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate(tt.environment)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStoreConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      StoreConfig
		environment string
		wantErr     bool
	}{
		{"sqlite with path", StoreConfig{Driver: StoreSQLite, DSN: "x.db", Key: "k"}, EnvDevelopment, false},
		{"sqlite without path", StoreConfig{Driver: StoreSQLite, Key: "k"}, EnvDevelopment, true},
		{"memory in development", StoreConfig{Driver: StoreMemory, Key: "k"}, EnvDevelopment, false},
		{"memory in production", StoreConfig{Driver: StoreMemory, Key: "k"}, EnvProduction, true},
		{"unknown driver", StoreConfig{Driver: "redis", DSN: "x", Key: "k"}, EnvDevelopment, true},
		{"empty key", StoreConfig{Driver: StoreMemory}, EnvDevelopment, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate(tt.environment)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStoreConfig_DataSource(t *testing.T) {
	pg := StoreConfig{Driver: StorePostgres, DSN: "postgres://u:p@db:5432/lapor?sslmode=require"}
	got, err := pg.DataSource()
	if err != nil {
		t.Fatalf("DataSource() error = %v", err)
	}
	if got != "host=db port=5432 user=u password=p dbname=lapor sslmode=require" {
		t.Errorf("DataSource() = %v", got)
	}

	bad := StoreConfig{Driver: StorePostgres, DSN: "not a url"}
	if _, err := bad.DataSource(); err == nil {
		t.Error("DataSource() should fail for an invalid postgres URL")
	}
}

func TestLoadWithValidation_ProductionRequiresHTTPS(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAPORINFRA_SERVER_ENVIRONMENT", "production")

	if _, err := LoadWithValidation("form-gateway"); err == nil {
		t.Error("LoadWithValidation() should fail in production with the localhost default base url")
	}
}

func TestLoadWithValidation_ProductionWithConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAPORINFRA_SERVER_ENVIRONMENT", "production")
	t.Setenv("LAPORINFRA_API_BASE_URL", "https://api.example.go.id")
	t.Setenv("LAPORINFRA_STORE_DRIVER", "postgres")
	t.Setenv("LAPORINFRA_STORE_DSN", "postgres://u:p@prod-db:5432/lapor?sslmode=require")

	cfg, err := LoadWithValidation("form-gateway")
	if err != nil {
		t.Fatalf("LoadWithValidation() with proper production config should not error: %v", err)
	}
	if cfg.Server.Environment != EnvProduction {
		t.Errorf("Server.Environment = %v, want production", cfg.Server.Environment)
	}
}

func TestConfig_ValidateUploadPolicy(t *testing.T) {
	clearEnv(t)
	t.Setenv("LAPORINFRA_UPLOAD_POLICY", "keep-some")

	if _, err := LoadWithValidation("laporinfra"); err == nil {
		t.Error("LoadWithValidation() should reject an unknown upload policy")
	}
}

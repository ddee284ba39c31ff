package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
server:
  listen_addr: 127.0.0.1
  port: 9090
estimator:
  reference_year: 2025
  system_losses: 0.20
  panel_azimuth: 180
  altitude: 150
  turbidity: 3.0
storage:
  sqlite:
    path: /var/lib/solarninja/history.db
`

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	provider := NewYAMLProvider(writeTestConfig(t, testYAML))
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.ListenAddr != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Estimator.ReferenceYear != 2025 {
		t.Errorf("reference_year = %d, want 2025", cfg.Estimator.ReferenceYear)
	}
	if cfg.Estimator.SystemLosses != 0.20 {
		t.Errorf("system_losses = %v, want 0.20", cfg.Estimator.SystemLosses)
	}
	if cfg.Estimator.Altitude != 150 {
		t.Errorf("altitude = %v, want 150", cfg.Estimator.Altitude)
	}
	if cfg.Storage.SQLite == nil || cfg.Storage.SQLite.Path != "/var/lib/solarninja/history.db" {
		t.Errorf("unexpected storage config: %+v", cfg.Storage)
	}
}

func TestYAMLProviderSections(t *testing.T) {
	provider := NewYAMLProvider(writeTestConfig(t, testYAML))
	defer provider.Close()

	server, err := provider.GetServerConfig()
	if err != nil {
		t.Fatalf("GetServerConfig failed: %v", err)
	}
	if server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", server.Port)
	}

	estimator, err := provider.GetEstimatorConfig()
	if err != nil {
		t.Fatalf("GetEstimatorConfig failed: %v", err)
	}
	if estimator.PanelAzimuth != 180 {
		t.Errorf("panel azimuth = %v, want 180", estimator.PanelAzimuth)
	}

	if !provider.IsReadOnly() {
		t.Error("YAML provider should be read-only")
	}
}

func TestYAMLProviderMissingStorage(t *testing.T) {
	provider := NewYAMLProvider(writeTestConfig(t, "server:\n  port: 8080\n"))

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Storage.SQLite != nil {
		t.Errorf("expected nil SQLite storage, got %+v", cfg.Storage.SQLite)
	}
}

func TestYAMLProviderMissingFile(t *testing.T) {
	provider := NewYAMLProvider("/nonexistent/config.yaml")
	if _, err := provider.LoadConfig(); err == nil {
		t.Error("expected error for missing config file")
	}
}

package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// YAML-tagged mirror structs; converted to the internal format on load.
type yamlConfig struct {
	Server    serverYAML    `yaml:"server"`
	Estimator estimatorYAML `yaml:"estimator"`
	Storage   storageYAML   `yaml:"storage,omitempty"`
}

type serverYAML struct {
	ListenAddr  string `yaml:"listen_addr,omitempty"`
	Port        int    `yaml:"port,omitempty"`
	TLSCertPath string `yaml:"tls_cert_path,omitempty"`
	TLSKeyPath  string `yaml:"tls_key_path,omitempty"`
}

type estimatorYAML struct {
	ReferenceYear int     `yaml:"reference_year,omitempty"`
	SystemLosses  float64 `yaml:"system_losses,omitempty"`
	PanelAzimuth  float64 `yaml:"panel_azimuth,omitempty"`
	Altitude      float64 `yaml:"altitude,omitempty"`
	Turbidity     float64 `yaml:"turbidity,omitempty"`
}

type storageYAML struct {
	SQLite *sqliteYAML `yaml:"sqlite,omitempty"`
}

type sqliteYAML struct {
	Path string `yaml:"path"`
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from the YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(cfgFile, &raw); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Server: ServerData{
			ListenAddr:  raw.Server.ListenAddr,
			Port:        raw.Server.Port,
			TLSCertPath: raw.Server.TLSCertPath,
			TLSKeyPath:  raw.Server.TLSKeyPath,
		},
		Estimator: EstimatorData{
			ReferenceYear: raw.Estimator.ReferenceYear,
			SystemLosses:  raw.Estimator.SystemLosses,
			PanelAzimuth:  raw.Estimator.PanelAzimuth,
			Altitude:      raw.Estimator.Altitude,
			Turbidity:     raw.Estimator.Turbidity,
		},
	}

	if raw.Storage.SQLite != nil {
		config.Storage.SQLite = &SQLiteData{Path: raw.Storage.SQLite.Path}
	}

	y.config = config
	return config, nil
}

// GetServerConfig returns the server configuration section
func (y *YAMLProvider) GetServerConfig() (*ServerData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return &y.config.Server, nil
}

// GetEstimatorConfig returns the estimator configuration section
func (y *YAMLProvider) GetEstimatorConfig() (*EstimatorData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return &y.config.Estimator, nil
}

// GetStorageConfig returns the storage configuration section
func (y *YAMLProvider) GetStorageConfig() (*StorageData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return &y.config.Storage, nil
}

func (y *YAMLProvider) ensureLoaded() error {
	if y.config == nil {
		if _, err := y.LoadConfig(); err != nil {
			return err
		}
	}
	return nil
}

// IsReadOnly returns true; YAML configurations are not editable at runtime
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}

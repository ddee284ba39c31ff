// Package config defines the configuration model for the estimator
// service and the providers that load it from YAML files or SQLite
// databases.
package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetServerConfig() (*ServerData, error)
	GetEstimatorConfig() (*EstimatorData, error)
	GetStorageConfig() (*StorageData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Server    ServerData    `json:"server"`
	Estimator EstimatorData `json:"estimator"`
	Storage   StorageData   `json:"storage,omitempty"`
}

// ServerData holds the HTTP server configuration
type ServerData struct {
	ListenAddr  string `json:"listen_addr,omitempty"`
	Port        int    `json:"port,omitempty"`
	TLSCertPath string `json:"tls_cert_path,omitempty"`
	TLSKeyPath  string `json:"tls_key_path,omitempty"`
}

// EstimatorData holds the fixed modeling parameters for the energy
// estimator. Zero values fall back to the kernel defaults.
type EstimatorData struct {
	ReferenceYear int     `json:"reference_year,omitempty"`
	SystemLosses  float64 `json:"system_losses,omitempty"`
	PanelAzimuth  float64 `json:"panel_azimuth,omitempty"`
	Altitude      float64 `json:"altitude,omitempty"`
	Turbidity     float64 `json:"turbidity,omitempty"`
}

// StorageData holds the configuration for the estimate history store
type StorageData struct {
	SQLite *SQLiteData `json:"sqlite,omitempty"`
}

// SQLiteData holds the SQLite history database configuration
type SQLiteData struct {
	Path string `json:"path"`
}

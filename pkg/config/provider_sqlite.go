package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database
// configuration. The database is expected to hold one row per section
// for the config named 'default'.
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from the SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	server, err := s.GetServerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	config.Server = *server

	estimator, err := s.GetEstimatorConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load estimator config: %w", err)
	}
	config.Estimator = *estimator

	storage, err := s.GetStorageConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}
	config.Storage = *storage

	return config, nil
}

// GetServerConfig returns the server configuration from the database
func (s *SQLiteProvider) GetServerConfig() (*ServerData, error) {
	query := `
		SELECT listen_addr, port, tls_cert_path, tls_key_path
		FROM server
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	server := &ServerData{}
	var listenAddr, certPath, keyPath sql.NullString
	var port sql.NullInt64

	err := s.db.QueryRow(query).Scan(&listenAddr, &port, &certPath, &keyPath)
	if err == sql.ErrNoRows {
		return server, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query server config: %w", err)
	}

	server.ListenAddr = listenAddr.String
	server.Port = int(port.Int64)
	server.TLSCertPath = certPath.String
	server.TLSKeyPath = keyPath.String
	return server, nil
}

// GetEstimatorConfig returns the estimator configuration from the database
func (s *SQLiteProvider) GetEstimatorConfig() (*EstimatorData, error) {
	query := `
		SELECT reference_year, system_losses, panel_azimuth, altitude, turbidity
		FROM estimator
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	estimator := &EstimatorData{}
	var year sql.NullInt64
	var losses, azimuth, altitude, turbidity sql.NullFloat64

	err := s.db.QueryRow(query).Scan(&year, &losses, &azimuth, &altitude, &turbidity)
	if err == sql.ErrNoRows {
		return estimator, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query estimator config: %w", err)
	}

	estimator.ReferenceYear = int(year.Int64)
	estimator.SystemLosses = losses.Float64
	estimator.PanelAzimuth = azimuth.Float64
	estimator.Altitude = altitude.Float64
	estimator.Turbidity = turbidity.Float64
	return estimator, nil
}

// GetStorageConfig returns the storage configuration from the database
func (s *SQLiteProvider) GetStorageConfig() (*StorageData, error) {
	query := `
		SELECT sqlite_path
		FROM storage
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	storage := &StorageData{}
	var path sql.NullString

	err := s.db.QueryRow(query).Scan(&path)
	if err == sql.ErrNoRows {
		return storage, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query storage config: %w", err)
	}

	if path.Valid && path.String != "" {
		storage.SQLite = &SQLiteData{Path: path.String}
	}
	return storage, nil
}

// IsReadOnly returns false; SQLite configurations can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

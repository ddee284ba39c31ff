// Package database provides the estimate history store, a SQLite
// database accessed through GORM.
package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/solarninja/solarninja/internal/log"
	"github.com/solarninja/solarninja/pkg/estimate"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Client holds the connection to the history database
type Client struct {
	DB     *gorm.DB // Exported so it can be accessed from other packages
	logger *zap.SugaredLogger
}

// NewClient creates a new history database client
func NewClient(logger *zap.SugaredLogger) *Client {
	return &Client{
		logger: logger,
	}
}

// Connect opens the SQLite database at the given path and migrates the
// estimates table.
func (c *Client) Connect(path string) error {
	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	log.Info("connecting to history database...")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return fmt.Errorf("could not open history database: %w", err)
	}

	if err := db.AutoMigrate(&EstimateRecord{}); err != nil {
		return fmt.Errorf("could not migrate history database: %w", err)
	}

	c.DB = db
	return nil
}

// Close closes the underlying database connection
func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveEstimate persists a completed estimate and returns its ID.
func (c *Client) SaveEstimate(res *estimate.Result) (string, error) {
	monthlyJSON, err := json.Marshal(res.Monthly)
	if err != nil {
		return "", fmt.Errorf("could not encode monthly energy: %w", err)
	}
	tiltJSON, err := json.Marshal(res.MonthlyBestTilt)
	if err != nil {
		return "", fmt.Errorf("could not encode monthly tilts: %w", err)
	}

	rec := EstimateRecord{
		ID:                uuid.NewString(),
		Latitude:          res.Params.Latitude,
		Longitude:         res.Params.Longitude,
		SystemPowerKW:     res.Params.SystemPowerKW,
		PanelTilt:         res.Params.PanelTilt,
		AnnualEnergyKWh:   res.AnnualEnergyKWh,
		AnnualOptimalTilt: res.AnnualOptimalTilt,
		MonthlyEnergy:     string(monthlyJSON),
		MonthlyBestTilt:   string(tiltJSON),
	}

	if err := c.DB.Create(&rec).Error; err != nil {
		return "", fmt.Errorf("could not save estimate: %w", err)
	}
	return rec.ID, nil
}

// GetEstimate fetches one estimate record by ID.
func (c *Client) GetEstimate(id string) (*EstimateRecord, error) {
	var rec EstimateRecord
	if err := c.DB.First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecentEstimates returns up to limit estimate records, newest first.
func (c *Client) RecentEstimates(limit int) ([]EstimateRecord, error) {
	var recs []EstimateRecord
	err := c.DB.Order("created_at desc").Limit(limit).Find(&recs).Error
	return recs, err
}

// ToResult reconstructs the numeric result bundle from a stored record
// so a report can be rendered without recomputing the sweep.
func (r *EstimateRecord) ToResult(cfg estimate.Config) (*estimate.Result, error) {
	res := &estimate.Result{
		Params: estimate.Params{
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
			SystemPowerKW: r.SystemPowerKW,
			PanelTilt:     r.PanelTilt,
		},
		Config:            cfg,
		AnnualEnergyKWh:   r.AnnualEnergyKWh,
		AnnualOptimalTilt: r.AnnualOptimalTilt,
	}
	if err := json.Unmarshal([]byte(r.MonthlyEnergy), &res.Monthly); err != nil {
		return nil, fmt.Errorf("could not decode monthly energy: %w", err)
	}
	if err := json.Unmarshal([]byte(r.MonthlyBestTilt), &res.MonthlyBestTilt); err != nil {
		return nil, fmt.Errorf("could not decode monthly tilts: %w", err)
	}
	return res, nil
}

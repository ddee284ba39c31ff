package database

import (
	"time"
)

// EstimateRecord is one completed estimate persisted to the history
// store. Monthly tables are stored as JSON blobs so a report can be
// regenerated without re-running the tilt sweep.
type EstimateRecord struct {
	ID            string  `gorm:"primaryKey;column:id"`
	Latitude      float64 `gorm:"column:latitude;not null"`
	Longitude     float64 `gorm:"column:longitude;not null"`
	SystemPowerKW float64 `gorm:"column:system_power_kw;not null"`
	PanelTilt     float64 `gorm:"column:panel_tilt;not null"`

	AnnualEnergyKWh   float64 `gorm:"column:annual_energy_kwh"`
	AnnualOptimalTilt int     `gorm:"column:annual_optimal_tilt"`
	MonthlyEnergy     string  `gorm:"column:monthly_energy;type:text"`
	MonthlyBestTilt   string  `gorm:"column:monthly_best_tilt;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the GORM default table name
func (EstimateRecord) TableName() string {
	return "estimates"
}

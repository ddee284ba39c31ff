package restserver

import "time"

// EstimateRequest is the POST /api/estimate request body.
type EstimateRequest struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	SystemPowerKW float64 `json:"system_power_kw"`
	PanelTilt     float64 `json:"panel_tilt"`
}

// MonthlyEnergyRow is one row of the monthly energy table.
type MonthlyEnergyRow struct {
	Month     string  `json:"month"`
	EnergyKWh float64 `json:"energy_kwh"`
}

// MonthlyTiltRow is one row of the monthly best-tilt table.
type MonthlyTiltRow struct {
	Month    string `json:"month"`
	BestTilt int    `json:"best_tilt"`
}

// EstimateResponse is the numeric result bundle returned to the caller.
type EstimateResponse struct {
	ID                string             `json:"id,omitempty"`
	Latitude          float64            `json:"latitude"`
	Longitude         float64            `json:"longitude"`
	SystemPowerKW     float64            `json:"system_power_kw"`
	PanelTilt         float64            `json:"panel_tilt"`
	AnnualEnergyKWh   float64            `json:"annual_energy_kwh"`
	AnnualOptimalTilt int                `json:"annual_optimal_tilt"`
	Monthly           []MonthlyEnergyRow `json:"monthly"`
	MonthlyBestTilt   []MonthlyTiltRow   `json:"monthly_best_tilt"`
}

// EstimateSummary is one row of the GET /api/estimates history listing.
type EstimateSummary struct {
	ID                string    `json:"id"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	SystemPowerKW     float64   `json:"system_power_kw"`
	PanelTilt         float64   `json:"panel_tilt"`
	AnnualEnergyKWh   float64   `json:"annual_energy_kwh"`
	AnnualOptimalTilt int       `json:"annual_optimal_tilt"`
	CreatedAt         time.Time `json:"created_at"`
}

// StatusResponse is the GET /api/status body.
type StatusResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	StorageEnabled bool   `json:"storage_enabled"`
}

// errorResponse is the JSON body for all error statuses.
type errorResponse struct {
	Error string `json:"error"`
}

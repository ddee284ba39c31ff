package restserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/solarninja/solarninja/internal/constants"
	"github.com/solarninja/solarninja/internal/log"
	"github.com/solarninja/solarninja/pkg/estimate"
	"github.com/solarninja/solarninja/pkg/report"
	"gorm.io/gorm"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("error encoding response: %v", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// PostEstimate runs a full estimate for the submitted parameters and
// returns the numeric result bundle. When storage is enabled, the
// estimate is persisted and the response carries its ID.
func (h *Handlers) PostEstimate(w http.ResponseWriter, req *http.Request) {
	var body EstimateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	params := estimate.Params{
		Latitude:      body.Latitude,
		Longitude:     body.Longitude,
		SystemPowerKW: body.SystemPowerKW,
		PanelTilt:     body.PanelTilt,
	}

	res, err := estimate.Run(h.controller.estimatorCfg, params)
	if err != nil {
		if errors.Is(err, estimate.ErrInvalidLatitude) ||
			errors.Is(err, estimate.ErrInvalidLongitude) ||
			errors.Is(err, estimate.ErrInvalidPower) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("estimate failed: %v", err)
		h.writeError(w, http.StatusInternalServerError, "estimate failed")
		return
	}

	resp := resultToResponse(res)

	if h.controller.DBEnabled {
		id, err := h.controller.DB.SaveEstimate(res)
		if err != nil {
			// The numeric result is still valid; log and return it
			// without an ID rather than failing the request.
			log.Errorf("could not save estimate: %v", err)
		} else {
			resp.ID = id
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetReport renders the PDF report for a stored estimate and streams it
// as a download.
func (h *Handlers) GetReport(w http.ResponseWriter, req *http.Request) {
	if !h.controller.DBEnabled {
		h.writeError(w, http.StatusServiceUnavailable, "estimate storage is not configured")
		return
	}

	id := mux.Vars(req)["id"]
	rec, err := h.controller.DB.GetEstimate(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.writeError(w, http.StatusNotFound, "estimate not found")
			return
		}
		log.Errorf("error fetching estimate %s: %v", id, err)
		h.writeError(w, http.StatusInternalServerError, "error fetching estimate")
		return
	}

	res, err := rec.ToResult(h.controller.estimatorCfg)
	if err != nil {
		log.Errorf("error decoding estimate %s: %v", id, err)
		h.writeError(w, http.StatusInternalServerError, "error decoding estimate")
		return
	}

	pdfBytes, err := report.Generate(res)
	if err != nil {
		log.Errorf("report generation failed for %s: %v", id, err)
		h.writeError(w, http.StatusInternalServerError, "report generation failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=solar-estimate-%s.pdf", id))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
	w.Write(pdfBytes)
}

// GetEstimates returns the recent estimate history, newest first.
func (h *Handlers) GetEstimates(w http.ResponseWriter, req *http.Request) {
	if !h.controller.DBEnabled {
		h.writeError(w, http.StatusServiceUnavailable, "estimate storage is not configured")
		return
	}

	recs, err := h.controller.DB.RecentEstimates(50)
	if err != nil {
		log.Errorf("error fetching estimates: %v", err)
		h.writeError(w, http.StatusInternalServerError, "error fetching estimates")
		return
	}

	summaries := make([]EstimateSummary, len(recs))
	for i, rec := range recs {
		summaries[i] = EstimateSummary{
			ID:                rec.ID,
			Latitude:          rec.Latitude,
			Longitude:         rec.Longitude,
			SystemPowerKW:     rec.SystemPowerKW,
			PanelTilt:         rec.PanelTilt,
			AnnualEnergyKWh:   rec.AnnualEnergyKWh,
			AnnualOptimalTilt: rec.AnnualOptimalTilt,
			CreatedAt:         rec.CreatedAt,
		}
	}

	h.writeJSON(w, http.StatusOK, summaries)
}

// GetStatus reports service health and version.
func (h *Handlers) GetStatus(w http.ResponseWriter, req *http.Request) {
	h.writeJSON(w, http.StatusOK, StatusResponse{
		Status:         "ok",
		Version:        constants.Version,
		StorageEnabled: h.controller.DBEnabled,
	})
}

// resultToResponse converts the kernel result into the wire format.
func resultToResponse(res *estimate.Result) EstimateResponse {
	resp := EstimateResponse{
		Latitude:          res.Params.Latitude,
		Longitude:         res.Params.Longitude,
		SystemPowerKW:     res.Params.SystemPowerKW,
		PanelTilt:         res.Params.PanelTilt,
		AnnualEnergyKWh:   res.AnnualEnergyKWh,
		AnnualOptimalTilt: res.AnnualOptimalTilt,
		Monthly:           make([]MonthlyEnergyRow, len(res.Monthly)),
		MonthlyBestTilt:   make([]MonthlyTiltRow, len(res.MonthlyBestTilt)),
	}
	for i, m := range res.Monthly {
		resp.Monthly[i] = MonthlyEnergyRow{Month: m.Month.String(), EnergyKWh: m.EnergyKWh}
	}
	for i, m := range res.MonthlyBestTilt {
		resp.MonthlyBestTilt[i] = MonthlyTiltRow{Month: m.Month.String(), BestTilt: m.BestTilt}
	}
	return resp
}

package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/solarninja/solarninja/pkg/estimate"
	"go.uber.org/zap"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(zap.NewNop().Sugar())
	path := filepath.Join(t.TempDir(), "history.db")
	if err := c.Connect(path); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func sampleResult() *estimate.Result {
	res := &estimate.Result{
		Params: estimate.Params{
			Latitude:      50.45,
			Longitude:     30.52,
			SystemPowerKW: 10,
			PanelTilt:     45,
		},
		Config:            estimate.DefaultConfig(),
		AnnualEnergyKWh:   14000,
		AnnualOptimalTilt: 38,
	}
	for m := time.January; m <= time.December; m++ {
		res.Monthly = append(res.Monthly, estimate.MonthlyEnergy{Month: m, EnergyKWh: float64(m) * 100})
		res.MonthlyBestTilt = append(res.MonthlyBestTilt, estimate.MonthlyTilt{Month: m, BestTilt: int(m) + 20})
	}
	return res
}

func TestSaveAndGetEstimate(t *testing.T) {
	c := testClient(t)

	id, err := c.SaveEstimate(sampleResult())
	if err != nil {
		t.Fatalf("SaveEstimate failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveEstimate returned empty ID")
	}

	rec, err := c.GetEstimate(id)
	if err != nil {
		t.Fatalf("GetEstimate failed: %v", err)
	}
	if rec.Latitude != 50.45 || rec.AnnualOptimalTilt != 38 {
		t.Errorf("unexpected record: %+v", rec)
	}

	res, err := rec.ToResult(estimate.DefaultConfig())
	if err != nil {
		t.Fatalf("ToResult failed: %v", err)
	}
	if len(res.Monthly) != 12 || len(res.MonthlyBestTilt) != 12 {
		t.Fatalf("round-tripped result has %d/%d monthly rows", len(res.Monthly), len(res.MonthlyBestTilt))
	}
	if res.Monthly[0].Month != time.January || res.Monthly[0].EnergyKWh != 100 {
		t.Errorf("unexpected first monthly row: %+v", res.Monthly[0])
	}
}

func TestGetEstimateNotFound(t *testing.T) {
	c := testClient(t)
	if _, err := c.GetEstimate("no-such-id"); err == nil {
		t.Error("expected error for unknown estimate ID")
	}
}

func TestRecentEstimates(t *testing.T) {
	c := testClient(t)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := c.SaveEstimate(sampleResult())
		if err != nil {
			t.Fatalf("SaveEstimate failed: %v", err)
		}
		ids = append(ids, id)
	}

	recs, err := c.RecentEstimates(2)
	if err != nil {
		t.Fatalf("RecentEstimates failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	all, err := c.RecentEstimates(10)
	if err != nil {
		t.Fatalf("RecentEstimates failed: %v", err)
	}
	if len(all) != len(ids) {
		t.Errorf("expected %d records, got %d", len(ids), len(all))
	}
}

package services

import (
	"strings"
	"testing"
	"time"

	"voltage_lab/internal/models"
)

func testParams(samples int) models.GeneratorParams {
	return models.GeneratorParams{
		Samples:     samples,
		VoltageLow:  0,
		VoltageHigh: 10,
		DateStart:   time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:     time.Date(2020, 2, 2, 0, 0, 0, 0, time.UTC),
		FubIDs:      []string{"FUB-01", "FUB-02"},
		Filename:    "sample_data.csv",
	}
}

func TestRegenerateRespectsBounds(t *testing.T) {
	params := testParams(200)
	gen, err := NewGeneratorService(params)
	if err != nil {
		t.Fatalf("NewGeneratorService: %v", err)
	}

	batch := gen.Regenerate()
	if len(batch.Points) != params.Samples {
		t.Fatalf("expected %d points, got %d", params.Samples, len(batch.Points))
	}

	allowed := map[string]bool{"FUB-01": true, "FUB-02": true}
	for i, p := range batch.Points {
		if p.Voltage < params.VoltageLow || p.Voltage > params.VoltageHigh {
			t.Errorf("point %d: voltage %v outside [%v, %v]", i, p.Voltage, params.VoltageLow, params.VoltageHigh)
		}
		if p.Time.Before(params.DateStart) || p.Time.After(params.DateEnd) {
			t.Errorf("point %d: time %v outside [%v, %v]", i, p.Time, params.DateStart, params.DateEnd)
		}
		if !allowed[p.FubID] {
			t.Errorf("point %d: unexpected FubId %q", i, p.FubID)
		}
	}
}

func TestRegenerateZeroSamples(t *testing.T) {
	gen, err := NewGeneratorService(testParams(0))
	if err != nil {
		t.Fatalf("NewGeneratorService: %v", err)
	}

	batch := gen.Regenerate()
	if len(batch.Points) != 0 {
		t.Fatalf("expected empty batch, got %d points", len(batch.Points))
	}

	payload, filename, err := gen.DownloadCSV()
	if err != nil {
		t.Fatalf("DownloadCSV: %v", err)
	}
	if filename != "sample_data.csv" {
		t.Errorf("unexpected filename %q", filename)
	}
	if got := strings.TrimSpace(string(payload)); got != "Time,Voltage,FubId" {
		t.Errorf("expected header-only CSV, got %q", got)
	}
}

func TestRegenerateReplacesBatch(t *testing.T) {
	gen, err := NewGeneratorService(testParams(5))
	if err != nil {
		t.Fatalf("NewGeneratorService: %v", err)
	}

	first := gen.Regenerate()
	second := gen.Regenerate()
	if first.ID == second.ID {
		t.Error("expected a fresh batch id on regeneration")
	}
	if gen.Batch().ID != second.ID {
		t.Error("current batch should be the latest one")
	}
}

func TestDownloadBeforeGenerate(t *testing.T) {
	gen, err := NewGeneratorService(testParams(5))
	if err != nil {
		t.Fatalf("NewGeneratorService: %v", err)
	}

	if _, _, err := gen.DownloadCSV(); err != ErrNoData {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestDownloadReReadsFilename(t *testing.T) {
	gen, err := NewGeneratorService(testParams(3))
	if err != nil {
		t.Fatalf("NewGeneratorService: %v", err)
	}
	gen.Regenerate()

	params := testParams(3)
	params.Filename = "renamed.csv"
	if err := gen.UpdateParams(params); err != nil {
		t.Fatalf("UpdateParams: %v", err)
	}

	_, filename, err := gen.DownloadCSV()
	if err != nil {
		t.Fatalf("DownloadCSV: %v", err)
	}
	if filename != "renamed.csv" {
		t.Errorf("expected renamed.csv, got %q", filename)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	gen, err := NewGeneratorService(testParams(3))
	if err != nil {
		t.Fatalf("NewGeneratorService: %v", err)
	}

	batch := gen.Regenerate()
	payload, _, err := gen.DownloadCSV()
	if err != nil {
		t.Fatalf("DownloadCSV: %v", err)
	}

	table, err := ParseVoltageCSV("sample_data.csv", payload)
	if err != nil {
		t.Fatalf("ParseVoltageCSV: %v", err)
	}

	if len(table.Rows) != len(batch.Points) {
		t.Fatalf("row count mismatch: generated %d, parsed %d", len(batch.Points), len(table.Rows))
	}
	if !table.HasFubID {
		t.Error("expected FubId column to survive the round trip")
	}

	const tolerance = 1e-9
	for i, row := range table.Rows {
		orig := batch.Points[i]
		if diff := row.Voltage - orig.Voltage; diff > tolerance || diff < -tolerance {
			t.Errorf("row %d: voltage %v != %v", i, row.Voltage, orig.Voltage)
		}
		if !row.Time.Equal(orig.Time) {
			t.Errorf("row %d: time %v != %v", i, row.Time, orig.Time)
		}
		if row.FubID != orig.FubID {
			t.Errorf("row %d: fub id %q != %q", i, row.FubID, orig.FubID)
		}
	}
}

func TestValidateParams(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*models.GeneratorParams)
		wantErr bool
	}{
		{"valid", func(p *models.GeneratorParams) {}, false},
		{"negative samples", func(p *models.GeneratorParams) { p.Samples = -1 }, true},
		{"too many samples", func(p *models.GeneratorParams) { p.Samples = models.MaxSamples + 1 }, true},
		{"low above high", func(p *models.GeneratorParams) { p.VoltageLow = 5; p.VoltageHigh = 1 }, true},
		{"voltage outside edge", func(p *models.GeneratorParams) { p.VoltageHigh = 500 }, true},
		{"start after end", func(p *models.GeneratorParams) {
			p.DateStart = p.DateEnd.Add(time.Hour)
		}, true},
		{"no fub ids", func(p *models.GeneratorParams) { p.FubIDs = nil }, true},
		{"unknown fub id", func(p *models.GeneratorParams) { p.FubIDs = []string{"FUB-99"} }, true},
		{"empty filename", func(p *models.GeneratorParams) { p.Filename = "" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := testParams(10)
			tc.mutate(&params)
			err := ValidateParams(params)
			if tc.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

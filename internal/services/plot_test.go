package services

import (
	"bytes"
	"testing"
	"time"

	"voltage_lab/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func plotTable(hasFubID bool, rows ...models.UploadedRow) *models.UploadedTable {
	return &models.UploadedTable{
		Filename:   "data.csv",
		Rows:       rows,
		HasFubID:   hasFubID,
		UploadedAt: time.Now().UTC(),
	}
}

func TestRenderScatterGrouped(t *testing.T) {
	base := time.Date(2020, 2, 1, 10, 0, 0, 0, time.UTC)
	table := plotTable(true,
		models.UploadedRow{Time: base, Voltage: 1.0, FubID: "FUB-01"},
		models.UploadedRow{Time: base.Add(time.Minute), Voltage: 2.0, FubID: "FUB-02"},
		models.UploadedRow{Time: base.Add(2 * time.Minute), Voltage: 3.0, FubID: "FUB-01"},
	)

	png, err := RenderScatterPNG(table)
	if err != nil {
		t.Fatalf("RenderScatterPNG: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderScatterSingleSeries(t *testing.T) {
	base := time.Date(2020, 2, 1, 10, 0, 0, 0, time.UTC)
	table := plotTable(false,
		models.UploadedRow{Time: base, Voltage: 1.0},
		models.UploadedRow{Time: base.Add(time.Minute), Voltage: 2.0},
	)

	png, err := RenderScatterPNG(table)
	if err != nil {
		t.Fatalf("RenderScatterPNG: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderScatterSinglePoint(t *testing.T) {
	// go-chart требует минимум два значения X, одиночная точка дополняется
	table := plotTable(false,
		models.UploadedRow{Time: time.Date(2020, 2, 1, 10, 0, 0, 0, time.UTC), Voltage: 4.2},
	)

	if _, err := RenderScatterPNG(table); err != nil {
		t.Fatalf("single point must render: %v", err)
	}
}

func TestRenderScatterEmptyTable(t *testing.T) {
	if _, err := RenderScatterPNG(plotTable(false)); err == nil {
		t.Error("expected an error for an empty table")
	}
	if _, err := RenderScatterPNG(nil); err == nil {
		t.Error("expected an error for a nil table")
	}
}

func TestUploadedTableFubIDs(t *testing.T) {
	base := time.Now()
	table := plotTable(true,
		models.UploadedRow{Time: base, Voltage: 1, FubID: "FUB-02"},
		models.UploadedRow{Time: base, Voltage: 2, FubID: "FUB-01"},
		models.UploadedRow{Time: base, Voltage: 3, FubID: "FUB-02"},
	)

	ids := table.FubIDs()
	if len(ids) != 2 || ids[0] != "FUB-02" || ids[1] != "FUB-01" {
		t.Errorf("expected first-seen order [FUB-02 FUB-01], got %v", ids)
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voltage_lab/internal/metrics"
	"voltage_lab/internal/models"
	"voltage_lab/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := models.GeneratorParams{
		Samples:     10,
		VoltageLow:  0,
		VoltageHigh: 10,
		DateStart:   time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:     time.Date(2020, 2, 2, 0, 0, 0, 0, time.UTC),
		FubIDs:      []string{"FUB-01", "FUB-02"},
		Filename:    "sample_data.csv",
	}
	generator, err := services.NewGeneratorService(cfg)
	if err != nil {
		t.Fatalf("NewGeneratorService: %v", err)
	}

	m := metrics.New(prometheus.NewRegistry())
	server := NewRESTAPIServer(generator, services.NewViewerService(), m)
	return server.SetupRoutes()
}

func doRequest(router *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func uploadCSV(router *gin.Engine, filename string, payload []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", filename)
	fw.Write(payload)
	mw.Close()
	return doRequest(router, http.MethodPost, "/api/v1/viewer/upload", &buf, mw.FormDataContentType())
}

func TestDownloadBeforeRegenerate(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/generator/download", nil, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegenerateAndDownload(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/generator/regenerate", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("regenerate: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/api/v1/generator/download", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("download: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "sample_data.csv") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if lines[0] != "Time,Voltage,FubId" {
		t.Errorf("unexpected header row %q", lines[0])
	}
	if len(lines)-1 != 10 {
		t.Errorf("expected 10 data rows, got %d", len(lines)-1)
	}
}

func TestDownloadUploadRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	doRequest(router, http.MethodPost, "/api/v1/generator/regenerate", nil, "")
	download := doRequest(router, http.MethodGet, "/api/v1/generator/download", nil, "")

	w := uploadCSV(router, "sample_data.csv", download.Body.Bytes())
	if w.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data UploadResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal upload response: %v", err)
	}
	if resp.Data.RowCount != 10 {
		t.Errorf("expected 10 rows after round trip, got %d", resp.Data.RowCount)
	}
	if !resp.Data.HasFubID {
		t.Error("FubId column must survive the round trip")
	}

	// После загрузки доступен график
	w = doRequest(router, http.MethodGet, "/api/v1/viewer/plot", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("plot: expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %q", ct)
	}
}

func TestUploadSchemaError(t *testing.T) {
	router := newTestRouter(t)

	w := uploadCSV(router, "bad.csv", []byte("Time,FubId\n2020-02-01,FUB-01\n"))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadParseError(t *testing.T) {
	router := newTestRouter(t)

	w := uploadCSV(router, "bad.csv", []byte{0xff, 0xfe, 0x00})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadValueError(t *testing.T) {
	router := newTestRouter(t)

	w := uploadCSV(router, "bad.csv", []byte("Time,Voltage\n2020-02-01,abc\n"))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadSentinelFiltered(t *testing.T) {
	router := newTestRouter(t)

	payload := []byte("Time,Voltage\n2020-02-01,1.5\n2020-02-02,Invalid/Calib\n")
	w := uploadCSV(router, "data.csv", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data UploadResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data.RowCount != 1 || resp.Data.FilteredRows != 1 {
		t.Errorf("expected 1 row and 1 filtered, got %d/%d", resp.Data.RowCount, resp.Data.FilteredRows)
	}
}

func TestPlotAfterAllRowsFiltered(t *testing.T) {
	router := newTestRouter(t)

	// Все строки несут маркер Invalid/Calib — загрузка успешна, но таблица пуста
	payload := []byte("Time,Voltage\n" +
		"2020-02-01,Invalid/Calib\n" +
		"2020-02-02,Invalid/Calib\n")
	w := uploadCSV(router, "data.csv", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/api/v1/viewer/plot", nil, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("plot over empty table: expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateConfigValidation(t *testing.T) {
	router := newTestRouter(t)

	body := bytes.NewBufferString(`{
		"samples": 5000,
		"voltage_low": 0,
		"voltage_high": 10,
		"date_start": "2020-02-01",
		"date_end": "2020-02-02",
		"fub_ids": ["FUB-01"],
		"filename": "x.csv"
	}`)
	w := doRequest(router, http.MethodPut, "/api/v1/generator/config", body, "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-bounds samples must be rejected, got %d", w.Code)
	}
}

func TestHealthWithoutDatabase(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/monitoring/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Database != "disabled" {
		t.Errorf("expected database=disabled, got %q", resp.Database)
	}
	if resp.HasDataset || resp.HasUpload {
		t.Error("fresh service must report no dataset and no upload")
	}
}

func TestHistoryUnavailableWithoutDatabase(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/generator/history", "/api/v1/viewer/history"} {
		w := doRequest(router, http.MethodGet, path, nil, "")
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected 503, got %d", path, w.Code)
		}
	}
}

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"saas-forecast/domain"
	"saas-forecast/export"
	"saas-forecast/repository"
	"saas-forecast/service"
)

type failingExporter struct{}

func (failingExporter) Export(domain.ModelRecord) ([]byte, error) {
	return nil, errors.New("disk full")
}

func createModel(t *testing.T, router http.Handler) string {
	t.Helper()

	w := search(t, router, "3 months with 2 sales people")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp domain.QueryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.ModelID
}

func TestExportExcelHandler_OK(t *testing.T) {

	router, _ := newTestRouter(t, nil, nil)
	id := createModel(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/excel/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != export.ContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, export.FileName(id)) {
		t.Errorf("unexpected content disposition %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) == 0 || len(rows[0]) != 5 {
		t.Fatalf("expected header with metric, unit and 3 months, got %v", rows)
	}
}

func TestExportExcelHandler_LookupErrors(t *testing.T) {

	router, _ := newTestRouter(t, nil, nil)

	tests := []struct {
		name string
		id   string
		want int
	}{
		{"unknown", "6f1c1f0e-7c39-4a4a-9d7e-0a0b0c0d0e0f", http.StatusNotFound},
		{"malformed", "abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/export/excel/"+tt.id, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestExportExcelHandler_ExporterFailure(t *testing.T) {

	router, _ := newTestRouter(t, failingExporter{}, nil)
	id := createModel(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/excel/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Detail != "Error generating Excel" {
		t.Errorf("unexpected detail %q", body.Detail)
	}
}

func TestExportExcelHandler_LogsThroughRouterLogger(t *testing.T) {

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil)).With("service", "forecast-test")

	svc := service.NewFinanceService(repository.NewModelRepositoryMemory(), nil, nil)
	router := NewRouter(RouterDeps{
		Forecast: NewForecastHandler(svc),
		Export:   NewExportHandler(svc, failingExporter{}),
		Logger:   logger,
	})
	id := createModel(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/excel/"+id, nil)
	req.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if entry["msg"] != "error generating spreadsheet" {
			continue
		}
		found = true
		if entry["service"] != "forecast-test" || entry["request_id"] != "req-123" {
			t.Errorf("expected service and request id attributes, got %v", entry)
		}
	}
	if !found {
		t.Errorf("expected the export failure in the router logger output:\n%s", logs.String())
	}
}

package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"saas-forecast/export"
	"saas-forecast/service"
)

type ExportHandler struct {
	service  *service.FinanceService
	exporter export.Exporter
}

func NewExportHandler(service *service.FinanceService, exporter export.Exporter) *ExportHandler {
	return &ExportHandler{service: service, exporter: exporter}
}

// ExportExcel handles GET /api/v1/export/excel/{model_id}
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.GetModel(chi.URLParam(r, "model_id"))
	if err != nil {
		writeLookupError(w, r, err)
		return
	}

	data, err := h.exporter.Export(record)
	if err != nil {
		loggerFromContext(r.Context()).ErrorContext(r.Context(), "error generating spreadsheet", "model_id", record.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "Error generating Excel")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(record.ID)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		loggerFromContext(r.Context()).WarnContext(r.Context(), "error writing spreadsheet", "error", err)
	}
}

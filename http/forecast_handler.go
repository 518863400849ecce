package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"saas-forecast/domain"
	"saas-forecast/service"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ForecastHandler struct {
	service *service.FinanceService
}

func NewForecastHandler(service *service.FinanceService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:  "healthy",
		Message: "Autonomous Finance API is running",
	})
}

// Search handles GET /api/v1/search?query=...
func (h *ForecastHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if !params.Has("query") {
		writeError(w, r, http.StatusBadRequest, domain.ErrInvalidQuery.Error()+": query parameter is required")
		return
	}

	result, err := h.service.ProcessQuery(r.Context(), params.Get("query"))
	if err != nil {
		loggerFromContext(r.Context()).ErrorContext(r.Context(), "error processing query", "error", err)
		writeError(w, r, http.StatusInternalServerError, "error processing query")
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

// GetModel handles GET /api/v1/models/{model_id}
func (h *ForecastHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.GetModel(chi.URLParam(r, "model_id"))
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, record)
}

func (h *ForecastHandler) RevenueDrivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.service.RevenueDrivers())
}

func writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidModelID):
		writeError(w, r, http.StatusBadRequest, "invalid model id")
	case errors.Is(err, domain.ErrModelNotFound):
		writeError(w, r, http.StatusNotFound, "Model not found")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

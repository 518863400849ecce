package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type RouterDeps struct {
	Forecast    *ForecastHandler
	Export      *ExportHandler
	RateLimiter *RateLimiter
	Logger      *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware)
	r.Use(corsMiddleware)

	r.Get("/health", deps.Forecast.Health)

	r.Route("/api/v1", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(RateLimitMiddleware(deps.RateLimiter))
		}
		r.Get("/search", deps.Forecast.Search)
		r.Get("/models/{model_id}", deps.Forecast.GetModel)
		r.Get("/export/excel/{model_id}", deps.Export.ExportExcel)
		r.Get("/revenue-drivers", deps.Forecast.RevenueDrivers)
	})
	return r
}

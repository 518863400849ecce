package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"saas-forecast/config"
	"saas-forecast/export"
	"saas-forecast/repository"
	"saas-forecast/service"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "saas-forecast",
	Short: "Natural-language SaaS revenue forecasting",
	Long: `saas-forecast turns a business question such as
"Create 12-month revenue forecast with 2 sales people, marketing spend $200k/month"
into a month-by-month revenue projection and exports it as a spreadsheet.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("FORECAST_CONFIG"),
		"path to a YAML config file (env FORECAST_CONFIG)")
	rootCmd.AddCommand(serveCmd, forecastCmd, driversCmd)
}

func newLogger(w io.Writer, json bool, levelName, serviceName string) (*slog.Logger, error) {
	level, err := config.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", serviceName), nil
}

// app is the wired set of components shared by the commands.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	models   *repository.ModelRepositoryMemory
	finance  *service.FinanceService
	exporter *export.ExcelExporter
	closers  []func() error
}

func buildApp(ctx context.Context, cfg config.Config, logger *slog.Logger, useOracle bool) (*app, error) {
	a := &app{
		cfg:      cfg,
		logger:   logger,
		models:   repository.NewModelRepositoryMemory(),
		exporter: export.NewExcelExporter(),
	}

	var primary service.Oracle
	if useOracle && cfg.Oracle.APIKey != "" {
		cache, err := a.buildCache(ctx)
		if err != nil {
			return nil, err
		}
		primary = service.NewLLMOracle(service.LLMOracleConfig{
			APIKey: cfg.Oracle.APIKey,
			APIURL: cfg.Oracle.URL,
			Model:  cfg.Oracle.Model,
			Cache:  cache,
			Logger: logger,
		})
	} else {
		logger.InfoContext(ctx, "oracle disabled, queries use the local interpreter")
	}

	oracle := service.NewFallbackOracle(primary, cfg.Oracle.Timeout, logger)
	a.finance = service.NewFinanceService(a.models, oracle, logger)
	return a, nil
}

// buildCache prefers Redis and falls back to a process-local cache when
// Redis is not configured or unreachable.
func (a *app) buildCache(ctx context.Context) (repository.CacheRepository, error) {
	if a.cfg.Cache.RedisURL == "" {
		return repository.NewMemoryCache(), nil
	}

	redisCache, err := repository.NewRedisCache(a.cfg.Cache.RedisURL, a.cfg.Cache.TTL)
	if err != nil {
		return nil, fmt.Errorf("configure redis cache: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		a.logger.WarnContext(ctx, "redis unavailable, using in-memory oracle cache", "error", err)
		_ = redisCache.Close()
		return repository.NewMemoryCache(), nil
	}

	a.closers = append(a.closers, redisCache.Close)
	return redisCache, nil
}

func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("error closing resource", "error", err)
		}
	}
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"saas-forecast/domain"
	"saas-forecast/repository"
)

var digitsRe = regexp.MustCompile(`\d+`)

type FinanceService struct {
	repo      repository.ModelRepository
	oracle    Oracle
	knowledge KnowledgeBase
	logger    *slog.Logger
}

// NewFinanceService creates a FinanceService. A nil oracle means every query
// is answered by the local interpreter.
func NewFinanceService(
	repo repository.ModelRepository,
	oracle Oracle,
	logger *slog.Logger,
) *FinanceService {
	if oracle == nil {
		oracle = LocalOracle{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FinanceService{
		repo:      repo,
		oracle:    oracle,
		knowledge: DefaultKnowledgeBase(),
		logger:    logger,
	}
}

// ProcessQuery turns a natural-language query into a stored forecast. Blank
// input yields the default forecast and input past MaxQueryLength is cut.
func (s *FinanceService) ProcessQuery(ctx context.Context, query string) (domain.QueryResponse, error) {
	query = truncateQuery(strings.TrimSpace(query))

	ctx, span := tracer.Start(ctx, "finance.process_query")
	defer span.End()

	var (
		raw domain.RawParameters
		err error
	)
	if query == "" {
		// Nothing to interpret: the forecast is built from defaults.
		raw, _ = LocalOracle{}.Infer(ctx, query)
	} else if raw, err = s.oracle.Infer(ctx, query); err != nil {
		s.logger.WarnContext(ctx, "oracle returned an error, using local interpreter", "error", err)
		raw, _ = LocalOracle{}.Infer(ctx, query)
	}

	timeHorizon := TimeHorizonFromRaw(raw.TimeHorizonMonths)
	assumptions := NormalizeAssumptions(raw.Assumptions)
	projections := ProjectMonthly(timeHorizon, assumptions)

	drivers := raw.RevenueDrivers
	if drivers == nil {
		drivers = []domain.RevenueDriver{}
	}

	record := domain.ModelRecord{
		TimeHorizonMonths: len(projections),
		Assumptions:       assumptions,
		RevenueDrivers:    drivers,
		Projections:       projections,
	}

	id, err := s.repo.Save(record)
	if err != nil {
		return domain.QueryResponse{}, fmt.Errorf("store model: %w", err)
	}

	span.SetAttributes(
		attribute.String("model.id", id),
		attribute.Int("model.time_horizon_months", len(projections)),
	)
	s.logger.InfoContext(ctx, "forecast created", "model_id", id, "months", len(projections))

	return domain.QueryResponse{
		ModelID:        id,
		RevenueDrivers: drivers,
		Projections:    projections,
		Assumptions:    assumptions,
	}, nil
}

// truncateQuery cuts query to MaxQueryLength bytes without splitting a rune.
func truncateQuery(query string) string {
	if len(query) <= MaxQueryLength {
		return query
	}
	cut := MaxQueryLength
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut]
}

// GetModel looks up a stored forecast. Malformed identifiers yield
// ErrInvalidModelID, unknown ones ErrModelNotFound.
func (s *FinanceService) GetModel(id string) (domain.ModelRecord, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return domain.ModelRecord{}, fmt.Errorf("%w: %q", domain.ErrInvalidModelID, id)
	}
	record, ok := s.repo.Get(id)
	if !ok {
		return domain.ModelRecord{}, domain.ErrModelNotFound
	}
	return record, nil
}

// RevenueDrivers returns the catalog of available revenue drivers.
func (s *FinanceService) RevenueDrivers() map[string]domain.DriverInfo {
	out := make(map[string]domain.DriverInfo, len(s.knowledge.RevenueDrivers))
	for k, v := range s.knowledge.RevenueDrivers {
		out[k] = v
	}
	return out
}

// TimeHorizonFromRaw coerces the oracle's time horizon. Numbers are
// truncated, strings use their first run of digits; anything else yields 0,
// which the engine replaces with its default. Values are capped at
// MaxTimeHorizonMonths.
func TimeHorizonFromRaw(value any) int {
	months := 0
	switch v := value.(type) {
	case int:
		months = v
	case int64:
		months = int(v)
	case float64:
		switch {
		case math.IsNaN(v), v <= 0:
		case v > MaxTimeHorizonMonths:
			months = MaxTimeHorizonMonths
		default:
			months = int(v)
		}
	case string:
		if m := digitsRe.FindString(v); m != "" {
			n, err := strconv.Atoi(m)
			if err != nil {
				n = MaxTimeHorizonMonths
			}
			months = n
		}
	}
	if months > MaxTimeHorizonMonths {
		months = MaxTimeHorizonMonths
	}
	return months
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"saas-forecast/domain"
)

// Oracle turns a free-text query into raw forecast parameters.
type Oracle interface {
	Infer(ctx context.Context, query string) (domain.RawParameters, error)
}

// LocalOracle answers from the heuristic query interpreter. It never fails.
type LocalOracle struct{}

func (LocalOracle) Infer(_ context.Context, query string) (domain.RawParameters, error) {
	return RawParametersFromPartial(InterpretQuery(query)), nil
}

// RawParametersFromPartial builds oracle-shaped parameters from what the
// interpreter extracted. Only matched values end up in Assumptions so the
// normalizer supplies the rest.
func RawParametersFromPartial(p domain.PartialParameters) domain.RawParameters {
	defaults := domain.DefaultAssumptions()
	assumptions := map[string]any{}

	salesPeople := float64(defaults.InitialSalesPeople)
	marketing := defaults.MarketingSpendMonthly

	if p.SalesPeople != nil {
		salesPeople = float64(*p.SalesPeople)
		assumptions["initial_sales_people"] = *p.SalesPeople
	}
	if p.MarketingSpend != nil {
		marketing = float64(*p.MarketingSpend)
		assumptions["marketing_spend_monthly"] = *p.MarketingSpend
	}
	if p.ConversionRate != nil {
		assumptions["conversion_rate"] = *p.ConversionRate
	}

	raw := domain.RawParameters{
		RevenueDrivers: []domain.RevenueDriver{
			{Name: "number_of_sales_people", Type: "input", Value: &salesPeople, Unit: "#"},
			{Name: "marketing_spend", Type: "input", Value: &marketing, Unit: "$"},
		},
		Assumptions:         assumptions,
		BusinessFocus:       []string{"large_customers", "small_medium_customers"},
		SpecialInstructions: []string{},
	}
	if p.Months != nil {
		raw.TimeHorizonMonths = *p.Months
	}
	return raw
}

// FallbackOracle calls Primary once with a deadline and answers from Fallback
// when it fails, times out or is not configured.
type FallbackOracle struct {
	Primary  Oracle
	Fallback Oracle
	Timeout  time.Duration
	Logger   *slog.Logger
}

// NewFallbackOracle wraps primary with the local interpreter as fallback.
// primary may be nil.
func NewFallbackOracle(primary Oracle, timeout time.Duration, logger *slog.Logger) *FallbackOracle {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackOracle{
		Primary:  primary,
		Fallback: LocalOracle{},
		Timeout:  timeout,
		Logger:   logger,
	}
}

func (o *FallbackOracle) Infer(ctx context.Context, query string) (domain.RawParameters, error) {
	ctx, span := tracer.Start(ctx, "oracle.infer")
	defer span.End()

	fallback := o.Fallback
	if fallback == nil {
		fallback = LocalOracle{}
	}

	if o.Primary == nil {
		span.SetAttributes(attribute.String("oracle.source", "local"))
		return fallback.Infer(ctx, query)
	}

	primaryCtx := ctx
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		primaryCtx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	raw, err := o.Primary.Infer(primaryCtx, query)
	if err == nil {
		span.SetAttributes(attribute.String("oracle.source", "primary"))
		return raw, nil
	}

	if !errors.Is(err, domain.ErrOracleUnavailable) {
		o.Logger.WarnContext(ctx, "oracle failed, using local interpreter", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "primary oracle failed")
	}
	span.SetAttributes(attribute.String("oracle.source", "local"))
	return fallback.Infer(ctx, query)
}

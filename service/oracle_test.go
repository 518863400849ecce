package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"saas-forecast/domain"
)

type stubOracle struct {
	raw   domain.RawParameters
	err   error
	delay time.Duration
	calls int
}

func (s *stubOracle) Infer(ctx context.Context, _ string) (domain.RawParameters, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return domain.RawParameters{}, ctx.Err()
		}
	}
	return s.raw, s.err
}

func TestLocalOracle_OnlyMatchedAssumptions(t *testing.T) {

	raw, err := LocalOracle{}.Infer(context.Background(), "6-month forecast with 3 sales people")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if raw.TimeHorizonMonths != 6 {
		t.Errorf("expected 6 months, got %v", raw.TimeHorizonMonths)
	}
	if len(raw.Assumptions) != 1 || raw.Assumptions["initial_sales_people"] != 3 {
		t.Errorf("unexpected assumptions: %v", raw.Assumptions)
	}
	if len(raw.RevenueDrivers) != 2 {
		t.Fatalf("expected 2 revenue drivers, got %d", len(raw.RevenueDrivers))
	}
	if v := raw.RevenueDrivers[1].Value; v == nil || *v != 200000 {
		t.Errorf("expected default marketing driver value, got %v", v)
	}
}

func TestLocalOracle_NoMatchLeavesHorizonUnset(t *testing.T) {

	raw, _ := LocalOracle{}.Infer(context.Background(), "hello")
	if raw.TimeHorizonMonths != nil {
		t.Errorf("expected no horizon, got %v", raw.TimeHorizonMonths)
	}
	if len(raw.Assumptions) != 0 {
		t.Errorf("expected no assumptions, got %v", raw.Assumptions)
	}
}

func TestFallbackOracle_UsesPrimary(t *testing.T) {

	primary := &stubOracle{raw: domain.RawParameters{TimeHorizonMonths: float64(9)}}
	o := NewFallbackOracle(primary, time.Second, nil)

	raw, err := o.Infer(context.Background(), "6-month forecast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.TimeHorizonMonths != float64(9) {
		t.Errorf("expected primary answer, got %v", raw.TimeHorizonMonths)
	}
}

func TestFallbackOracle_FallsBackOnError(t *testing.T) {

	primary := &stubOracle{err: errors.New("boom")}
	o := NewFallbackOracle(primary, time.Second, nil)

	raw, err := o.Infer(context.Background(), "6-month forecast")
	if err != nil {
		t.Fatalf("expected fallback to swallow the error, got %v", err)
	}
	if raw.TimeHorizonMonths != 6 {
		t.Errorf("expected local answer, got %v", raw.TimeHorizonMonths)
	}
	if primary.calls != 1 {
		t.Errorf("expected exactly one primary attempt, got %d", primary.calls)
	}
}

func TestFallbackOracle_FallsBackOnTimeout(t *testing.T) {

	primary := &stubOracle{
		raw:   domain.RawParameters{TimeHorizonMonths: float64(9)},
		delay: time.Second,
	}
	o := NewFallbackOracle(primary, 20*time.Millisecond, nil)

	start := time.Now()
	raw, err := o.Infer(context.Background(), "3-month forecast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.TimeHorizonMonths != 3 {
		t.Errorf("expected local answer, got %v", raw.TimeHorizonMonths)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Errorf("timeout was not enforced")
	}
}

func TestFallbackOracle_NilPrimary(t *testing.T) {

	o := NewFallbackOracle(nil, 0, nil)

	raw, err := o.Infer(context.Background(), "12 months")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.TimeHorizonMonths != 12 {
		t.Errorf("expected 12, got %v", raw.TimeHorizonMonths)
	}
}

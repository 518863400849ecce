package service

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"saas-forecast/domain"
)

func TestNormalizeAssumptions_EmptyUsesDefaults(t *testing.T) {

	for _, raw := range []map[string]any{nil, {}} {
		if diff := cmp.Diff(domain.DefaultAssumptions(), NormalizeAssumptions(raw)); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	}
}

func TestNormalizeAssumptions_OracleAliases(t *testing.T) {

	raw := map[string]any{
		"sales_people_initial":                 float64(3),
		"sales_people_growth_monthly":          float64(1),
		"revenue_per_large_customer":           float64(20000),
		"avg_revenue_per_small_customer":       float64(4000),
		"monthly_marketing_spend":              float64(150000),
		"sales_inquiries_per_conversion_month": float64(200),
		"demo_rate":                            0.3,
		"customers_per_salesperson_per_month":  float64(2),
	}

	want := domain.CanonicalAssumptions{
		InitialSalesPeople:          3,
		SalesPeopleGrowthRate:       1,
		LargeCustomerRevenueMonthly: 20000,
		SmallCustomerRevenueMonthly: 4000,
		MarketingSpendMonthly:       150000,
		SalesInquiriesPerMonth:      200,
		ConversionRate:              0.3,
	}

	if diff := cmp.Diff(want, NormalizeAssumptions(raw)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNormalizeAssumptions_CanonicalNameWins(t *testing.T) {

	raw := map[string]any{
		"conversion_rate":      0.2,
		"demo_rate":            0.9,
		"initial_sales_people": 4,
		"sales_people_initial": 7,
	}

	got := NormalizeAssumptions(raw)
	if got.ConversionRate != 0.2 {
		t.Errorf("expected conversion 0.2, got %v", got.ConversionRate)
	}
	if got.InitialSalesPeople != 4 {
		t.Errorf("expected 4 sales people, got %d", got.InitialSalesPeople)
	}
}

func TestNormalizeAssumptions_ValueTypes(t *testing.T) {

	raw := map[string]any{
		"initial_sales_people":      "2.9",
		"marketing_spend_monthly":   "$250,000",
		"sales_inquiries_per_month": json.Number("120"),
		"conversion_rate":           "not a number",
		"demo_rate":                 0.5,
	}

	got := NormalizeAssumptions(raw)
	if got.InitialSalesPeople != 2 {
		t.Errorf("expected truncated 2, got %d", got.InitialSalesPeople)
	}
	if got.MarketingSpendMonthly != 250000 {
		t.Errorf("expected 250000, got %v", got.MarketingSpendMonthly)
	}
	if got.SalesInquiriesPerMonth != 120 {
		t.Errorf("expected 120, got %v", got.SalesInquiriesPerMonth)
	}
	if got.ConversionRate != 0.5 {
		t.Errorf("expected unparseable alias to be skipped, got %v", got.ConversionRate)
	}
}

func TestNormalizeAssumptions_NoRangeValidation(t *testing.T) {

	got := NormalizeAssumptions(map[string]any{"conversion_rate": 1.7})
	if got.ConversionRate != 1.7 {
		t.Errorf("expected out-of-range value to pass through, got %v", got.ConversionRate)
	}
}

func TestAssumptionAliases(t *testing.T) {

	want := []string{"conversion_rate", "demo_rate"}
	if diff := cmp.Diff(want, AssumptionAliases("conversion_rate")); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if AssumptionAliases("unknown") != nil {
		t.Errorf("expected nil for unknown key")
	}
}

package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"saas-forecast/domain"
)

type assumptionField struct {
	canonical string
	aliases   []string
	apply     func(*domain.CanonicalAssumptions, float64)
}

// assumptionAliases is the ordered alias table used by NormalizeAssumptions.
// For each field the first alias present in the raw input wins.
var assumptionAliases = []assumptionField{
	{
		canonical: "initial_sales_people",
		aliases:   []string{"initial_sales_people", "sales_people_initial"},
		apply:     func(a *domain.CanonicalAssumptions, v float64) { a.InitialSalesPeople = int(v) },
	},
	{
		canonical: "sales_people_growth_rate",
		aliases:   []string{"sales_people_growth_rate", "sales_people_growth_monthly"},
		apply:     func(a *domain.CanonicalAssumptions, v float64) { a.SalesPeopleGrowthRate = v },
	},
	{
		canonical: "large_customer_revenue_monthly",
		aliases:   []string{"large_customer_revenue_monthly", "revenue_per_large_customer"},
		apply:     func(a *domain.CanonicalAssumptions, v float64) { a.LargeCustomerRevenueMonthly = v },
	},
	{
		canonical: "small_customer_revenue_monthly",
		aliases:   []string{"small_customer_revenue_monthly", "avg_revenue_per_small_customer"},
		apply:     func(a *domain.CanonicalAssumptions, v float64) { a.SmallCustomerRevenueMonthly = v },
	},
	{
		canonical: "marketing_spend_monthly",
		aliases:   []string{"marketing_spend_monthly", "monthly_marketing_spend"},
		apply:     func(a *domain.CanonicalAssumptions, v float64) { a.MarketingSpendMonthly = v },
	},
	{
		canonical: "sales_inquiries_per_month",
		aliases:   []string{"sales_inquiries_per_month", "sales_inquiries_per_conversion_month"},
		apply:     func(a *domain.CanonicalAssumptions, v float64) { a.SalesInquiriesPerMonth = v },
	},
	{
		canonical: "conversion_rate",
		aliases:   []string{"conversion_rate", "demo_rate"},
		apply:     func(a *domain.CanonicalAssumptions, v float64) { a.ConversionRate = v },
	},
}

// AssumptionAliases returns the accepted raw key names for a canonical key,
// in priority order.
func AssumptionAliases(canonical string) []string {
	for _, f := range assumptionAliases {
		if f.canonical == canonical {
			out := make([]string, len(f.aliases))
			copy(out, f.aliases)
			return out
		}
	}
	return nil
}

// NormalizeAssumptions maps raw oracle assumptions onto the canonical record.
// Missing fields take their defaults. Values are not range checked.
func NormalizeAssumptions(raw map[string]any) domain.CanonicalAssumptions {
	out := domain.DefaultAssumptions()
	for _, field := range assumptionAliases {
		for _, alias := range field.aliases {
			value, ok := raw[alias]
			if !ok {
				continue
			}
			n, ok := toFloat(value)
			if !ok {
				continue
			}
			field.apply(&out, n)
			break
		}
	}
	return out
}

// toFloat accepts JSON numbers, Go numeric types and numeric strings.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, finite(v)
	case float32:
		return float64(v), finite(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil && finite(n)
	case string:
		cleaned := strings.NewReplacer(",", "", "$", "", "%", "", " ", "").Replace(strings.TrimSpace(v))
		if cleaned == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(cleaned, 64)
		return n, err == nil && finite(n)
	default:
		return 0, false
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Package export renders stored forecasts as spreadsheets.
package export

import (
	"math"
	"strconv"

	"saas-forecast/domain"
	"saas-forecast/service"
)

// Row is one metric line of the exported sheet: a label, a unit and one
// value per month.
type Row struct {
	Metric string
	Unit   string
	Values []any
}

// Header returns the header row for a forecast of the given length.
func Header(months int) []string {
	out := make([]string, 0, months+2)
	out = append(out, "Metric", "Unit")
	for i := 1; i <= months; i++ {
		out = append(out, "M"+strconv.Itoa(i))
	}
	return out
}

// BuildRows derives the fixed metric rows of the export. The order of the
// rows is part of the file format consumers rely on.
func BuildRows(record domain.ModelRecord) []Row {
	p := record.Projections
	a := record.Assumptions

	column := func(f func(domain.MonthlyProjection) any) []any {
		values := make([]any, len(p))
		for i, m := range p {
			values[i] = f(m)
		}
		return values
	}
	constant := func(v any) []any {
		return column(func(domain.MonthlyProjection) any { return v })
	}

	return []Row{
		{"# of sales people", "#", column(func(m domain.MonthlyProjection) any { return m.SalesPeople })},
		{"# of large customer accounts they can sign per month, sales person", "#", constant(service.LargeCustomersPerSalesperson)},
		{"# of large customer accounts onboarded per month", "#", column(func(m domain.MonthlyProjection) any { return m.LargeCustomersAcquired })},
		{"Cumulative # of large paying customers", "#", column(func(m domain.MonthlyProjection) any { return m.LargeCustomersCumulative })},
		{"Average revenue per large customer", "$ per month", column(func(m domain.MonthlyProjection) any {
			return average(m.LargeCustomerRevenue, m.LargeCustomersCumulative)
		})},
		{"Digital Marketing spend per month", "$ per month", column(func(m domain.MonthlyProjection) any { return m.MarketingSpend })},
		{"Average CAC", "$ per customer", constant(service.DefaultCAC)},
		{"# of sales inquiries", "#", constant(a.SalesInquiriesPerMonth)},
		{"% conversions from demo to sign ups", "%", constant(FormatPercent(a.ConversionRate))},
		{"# of small/medium paying customers onboarded", "#", column(func(m domain.MonthlyProjection) any { return m.SmallCustomersAcquired })},
		{"Cumulative number of small/medium paying customers", "#", column(func(m domain.MonthlyProjection) any { return m.SmallCustomersCumulative })},
		{"Average revenue per small/medium customer", "$ per customer", column(func(m domain.MonthlyProjection) any {
			return average(m.SmallCustomerRevenue, m.SmallCustomersCumulative)
		})},
		{"Revenue from large clients", "$ per month", column(func(m domain.MonthlyProjection) any { return m.LargeCustomerRevenue })},
		{"Revenue from small and medium clients", "$ per month", column(func(m domain.MonthlyProjection) any { return m.SmallCustomerRevenue })},
		{"Total Revenues", "$ per month", column(func(m domain.MonthlyProjection) any { return m.TotalRevenue })},
		{"Total Revenues", "$ Mn per month", column(func(m domain.MonthlyProjection) any { return roundTo2Decimals(m.TotalRevenue / 1_000_000) })},
	}
}

// FormatPercent renders a fraction as a percentage string, e.g. 0.45 -> "45%".
func FormatPercent(fraction float64) string {
	return strconv.FormatFloat(roundTo2Decimals(fraction*100), 'f', -1, 64) + "%"
}

func average(revenue float64, customers int) float64 {
	if customers == 0 {
		return 0
	}
	return revenue / float64(customers)
}

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

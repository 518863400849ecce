package domain

// CanonicalAssumptions is the fixed set of business assumptions the
// projection engine runs on. Every field is always populated after
// normalization.
type CanonicalAssumptions struct {
	InitialSalesPeople          int     `json:"initial_sales_people"`
	SalesPeopleGrowthRate       float64 `json:"sales_people_growth_rate"`
	LargeCustomerRevenueMonthly float64 `json:"large_customer_revenue_monthly"`
	SmallCustomerRevenueMonthly float64 `json:"small_customer_revenue_monthly"`
	MarketingSpendMonthly       float64 `json:"marketing_spend_monthly"`
	SalesInquiriesPerMonth      float64 `json:"sales_inquiries_per_month"`
	ConversionRate              float64 `json:"conversion_rate"`
}

// DefaultAssumptions returns the assumptions used when the input says nothing.
func DefaultAssumptions() CanonicalAssumptions {
	return CanonicalAssumptions{
		InitialSalesPeople:          1,
		SalesPeopleGrowthRate:       0,
		LargeCustomerRevenueMonthly: 16667,
		SmallCustomerRevenueMonthly: 5000,
		MarketingSpendMonthly:       200000,
		SalesInquiriesPerMonth:      160,
		ConversionRate:              0.45,
	}
}

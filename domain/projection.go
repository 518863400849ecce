package domain

// MonthlyProjection is the financial state of a single month. Month is 1-indexed.
type MonthlyProjection struct {
	Month                    int     `json:"month"`
	SalesPeople              float64 `json:"sales_people"`
	LargeCustomersAcquired   int     `json:"large_customers_acquired"`
	LargeCustomersCumulative int     `json:"large_customers_cumulative"`
	LargeCustomerRevenue     float64 `json:"large_customer_revenue"`
	SmallCustomersAcquired   int     `json:"small_customers_acquired"`
	SmallCustomersCumulative int     `json:"small_customers_cumulative"`
	SmallCustomerRevenue     float64 `json:"small_customer_revenue"`
	MarketingSpend           float64 `json:"marketing_spend"`
	TotalRevenue             float64 `json:"total_revenue"`
}

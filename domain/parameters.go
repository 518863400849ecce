package domain

// RawParameters is the loosely typed output of an oracle. Keys inside
// Assumptions use whatever names the oracle chose.
type RawParameters struct {
	TimeHorizonMonths   any             `json:"time_horizon_months,omitempty"`
	RevenueDrivers      []RevenueDriver `json:"revenue_drivers,omitempty"`
	Assumptions         map[string]any  `json:"assumptions,omitempty"`
	BusinessFocus       []string        `json:"business_focus,omitempty"`
	SpecialInstructions []string        `json:"special_instructions,omitempty"`
}

// PartialParameters holds whatever the query interpreter could extract.
// Nil means the field was not found in the text.
type PartialParameters struct {
	Months         *int     `json:"months,omitempty"`
	SalesPeople    *int     `json:"sales_people,omitempty"`
	MarketingSpend *int     `json:"marketing_spend,omitempty"`
	ConversionRate *float64 `json:"conversion_rate,omitempty"`
}

// IsEmpty reports whether nothing was extracted.
func (p PartialParameters) IsEmpty() bool {
	return p.Months == nil && p.SalesPeople == nil && p.MarketingSpend == nil && p.ConversionRate == nil
}

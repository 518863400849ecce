package domain

// RevenueDriver describes one lever of the forecast, as reported by the oracle.
type RevenueDriver struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"` // "input", "calculated"
	Value        *float64 `json:"value,omitempty"`
	Unit         string   `json:"unit"`
	Formula      string   `json:"formula,omitempty"`
	BusinessUnit string   `json:"business_unit,omitempty"`
}

// ModelRecord is one immutable run of the projection engine.
type ModelRecord struct {
	ID                string               `json:"model_id"`
	TimeHorizonMonths int                  `json:"time_horizon_months"`
	Assumptions       CanonicalAssumptions `json:"assumptions"`
	RevenueDrivers    []RevenueDriver      `json:"revenue_drivers"`
	Projections       []MonthlyProjection  `json:"monthly_projections"`
}

// QueryResponse is what a caller gets back for a forecast query.
type QueryResponse struct {
	ModelID        string               `json:"model_id"`
	RevenueDrivers []RevenueDriver      `json:"revenue_drivers"`
	Projections    []MonthlyProjection  `json:"monthly_projections"`
	Assumptions    CanonicalAssumptions `json:"assumptions"`
}

// DriverInfo is an entry of the revenue driver catalog.
type DriverInfo struct {
	Type string `json:"type"`
	Unit string `json:"unit"`
}

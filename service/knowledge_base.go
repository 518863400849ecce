package service

import "saas-forecast/domain"

// BusinessUnit describes one go-to-market line of the modeled SaaS company.
type BusinessUnit struct {
	Name        string
	GoToMarket  string
	Assumptions map[string]float64
	Formulas    map[string]string
}

// KnowledgeBase holds the default business rules of the modeled company.
type KnowledgeBase struct {
	CompanyType    string
	BusinessUnits  []BusinessUnit
	RevenueDrivers map[string]domain.DriverInfo
}

// DefaultKnowledgeBase returns the built-in SaaS rules.
func DefaultKnowledgeBase() KnowledgeBase {
	return KnowledgeBase{
		CompanyType: "SaaS",
		BusinessUnits: []BusinessUnit{
			{
				Name:       "large_customers",
				GoToMarket: "direct sales",
				Assumptions: map[string]float64{
					"customers_per_salesperson_per_month": LargeCustomersPerSalesperson,
					"revenue_per_customer_per_month":      16667,
					"sales_people_initial":                1,
				},
				Formulas: map[string]string{
					"customers_acquired":   "floor(sales_people * customers_per_salesperson)",
					"cumulative_customers": "sum(customers_acquired)",
					"monthly_revenue":      "cumulative_customers * revenue_per_customer",
				},
			},
			{
				Name:       "small_medium_customers",
				GoToMarket: "digital marketing",
				Assumptions: map[string]float64{
					"monthly_marketing_spend":   200000,
					"cac":                       DefaultCAC,
					"sales_inquiries_per_month": 160,
					"demo_conversion_rate":      0.45,
					"avg_revenue_per_customer":  5000,
				},
				Formulas: map[string]string{
					"customers_acquired":   "floor(sales_inquiries * conversion_rate)",
					"cumulative_customers": "sum(customers_acquired)",
					"monthly_revenue":      "cumulative_customers * revenue_per_customer",
				},
			},
		},
		RevenueDrivers: map[string]domain.DriverInfo{
			"number_of_sales_people": {Type: "input", Unit: "#"},
			"marketing_spend":        {Type: "input", Unit: "$"},
		},
	}
}

// DefaultCAC is the customer acquisition cost reported in exports.
const DefaultCAC = 1500.0

package service

import (
	"math"

	"saas-forecast/domain"
)

// ProjectMonthly runs the revenue model for timeHorizon months. A non-positive
// horizon is replaced by DefaultTimeHorizonMonths.
//
// Large customers depend only on sales headcount; small/medium customers
// depend only on the inquiry funnel.
func ProjectMonthly(timeHorizon int, a domain.CanonicalAssumptions) []domain.MonthlyProjection {
	if timeHorizon <= 0 {
		timeHorizon = DefaultTimeHorizonMonths
	}

	projections := make([]domain.MonthlyProjection, 0, timeHorizon)

	salesPeople := float64(a.InitialSalesPeople)
	cumulativeLarge := 0
	cumulativeSmall := 0

	for month := 1; month <= timeHorizon; month++ {
		newLarge := int(math.Floor(salesPeople * LargeCustomersPerSalesperson))
		cumulativeLarge += newLarge
		largeRevenue := float64(cumulativeLarge) * a.LargeCustomerRevenueMonthly

		newSmall := int(math.Floor(a.SalesInquiriesPerMonth * a.ConversionRate))
		cumulativeSmall += newSmall
		smallRevenue := float64(cumulativeSmall) * a.SmallCustomerRevenueMonthly

		projections = append(projections, domain.MonthlyProjection{
			Month:                    month,
			SalesPeople:              salesPeople,
			LargeCustomersAcquired:   newLarge,
			LargeCustomersCumulative: cumulativeLarge,
			LargeCustomerRevenue:     largeRevenue,
			SmallCustomersAcquired:   newSmall,
			SmallCustomersCumulative: cumulativeSmall,
			SmallCustomerRevenue:     smallRevenue,
			MarketingSpend:           a.MarketingSpendMonthly,
			TotalRevenue:             largeRevenue + smallRevenue,
		})

		salesPeople += a.SalesPeopleGrowthRate
	}

	return projections
}

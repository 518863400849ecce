package service

const (
	DefaultTimeHorizonMonths = 11
	MaxTimeHorizonMonths     = 600 // 50 años

	// Clientes grandes que firma cada vendedor por mes
	LargeCustomersPerSalesperson = 1.5

	MaxQueryLength = 2000
)

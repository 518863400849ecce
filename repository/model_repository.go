package repository

import "saas-forecast/domain"

// ModelRepository stores computed forecasts. Save assigns a fresh identifier
// on every call; Get reports ok=false for identifiers it never issued.
type ModelRepository interface {
	Save(record domain.ModelRecord) (string, error)
	Get(id string) (domain.ModelRecord, bool)
}

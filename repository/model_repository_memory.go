package repository

import (
	"sync"

	"github.com/google/uuid"

	"saas-forecast/domain"
)

// ModelRepositoryMemory is an in-memory ModelRepository. Records live for
// the lifetime of the process; nothing is ever evicted.
type ModelRepositoryMemory struct {
	mu    sync.RWMutex
	data  map[string]domain.ModelRecord
	newID func() string
}

// NewModelRepositoryMemory creates a new in-memory model repository.
func NewModelRepositoryMemory() *ModelRepositoryMemory {
	return &ModelRepositoryMemory{
		data:  make(map[string]domain.ModelRecord),
		newID: uuid.NewString,
	}
}

// Save stores a copy of record under a new identifier and returns it.
func (r *ModelRepositoryMemory) Save(record domain.ModelRecord) (string, error) {
	id := r.newID()
	record.ID = id
	record.RevenueDrivers = cloneDrivers(record.RevenueDrivers)
	record.Projections = append([]domain.MonthlyProjection(nil), record.Projections...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[id] = record
	return id, nil
}

// Get returns a copy of the stored record.
func (r *ModelRepositoryMemory) Get(id string) (domain.ModelRecord, bool) {
	r.mu.RLock()
	record, ok := r.data[id]
	r.mu.RUnlock()
	if !ok {
		return domain.ModelRecord{}, false
	}
	record.RevenueDrivers = cloneDrivers(record.RevenueDrivers)
	record.Projections = append([]domain.MonthlyProjection(nil), record.Projections...)
	return record, true
}

// Len returns the number of stored records.
func (r *ModelRepositoryMemory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

func cloneDrivers(in []domain.RevenueDriver) []domain.RevenueDriver {
	if in == nil {
		return nil
	}
	out := make([]domain.RevenueDriver, len(in))
	for i, d := range in {
		if d.Value != nil {
			v := *d.Value
			d.Value = &v
		}
		out[i] = d
	}
	return out
}

package repository

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"saas-forecast/domain"
)

func sampleRecord() domain.ModelRecord {
	v := 2.0
	return domain.ModelRecord{
		TimeHorizonMonths: 2,
		Assumptions:       domain.DefaultAssumptions(),
		RevenueDrivers:    []domain.RevenueDriver{{Name: "number_of_sales_people", Type: "input", Value: &v, Unit: "#"}},
		Projections:       []domain.MonthlyProjection{{Month: 1}, {Month: 2}},
	}
}

func TestModelRepositoryMemory_SaveAndGet(t *testing.T) {

	repo := NewModelRepositoryMemory()

	id, err := repo.Save(sampleRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := repo.Get(id)
	if !ok {
		t.Fatalf("expected record %s", id)
	}
	want := sampleRecord()
	want.ID = id
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestModelRepositoryMemory_DistinctIDs(t *testing.T) {

	repo := NewModelRepositoryMemory()

	a, _ := repo.Save(sampleRecord())
	b, _ := repo.Save(sampleRecord())
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
	if repo.Len() != 2 {
		t.Errorf("expected 2 records, got %d", repo.Len())
	}
}

func TestModelRepositoryMemory_NotFound(t *testing.T) {

	repo := NewModelRepositoryMemory()

	if _, ok := repo.Get("never-issued"); ok {
		t.Errorf("expected not found")
	}
}

func TestModelRepositoryMemory_RecordsAreIsolated(t *testing.T) {

	repo := NewModelRepositoryMemory()
	rec := sampleRecord()
	id, _ := repo.Save(rec)

	rec.Projections[0].Month = 99
	*rec.RevenueDrivers[0].Value = 99

	got, _ := repo.Get(id)
	got.Projections[1].Month = 42

	again, _ := repo.Get(id)
	if again.Projections[0].Month != 1 || again.Projections[1].Month != 2 {
		t.Errorf("stored projections were mutated: %+v", again.Projections)
	}
	if *again.RevenueDrivers[0].Value != 2 {
		t.Errorf("stored driver was mutated: %v", *again.RevenueDrivers[0].Value)
	}
}

func TestModelRepositoryMemory_ConcurrentSaves(t *testing.T) {

	repo := NewModelRepositoryMemory()

	const n = 64
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := repo.Save(sampleRecord())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			ids[i] = id
			if _, ok := repo.Get(id); !ok {
				t.Errorf("record %s not readable", id)
			}
		}()
	}
	wg.Wait()

	if repo.Len() != n {
		t.Errorf("expected %d records, got %d", n, repo.Len())
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

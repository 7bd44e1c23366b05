package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cat-health-api/internal/domain/records"
)

type recordsRepo struct {
	mu   sync.RWMutex
	byID map[string]records.HealthRecord
}

func NewRecordsRepo() records.Repository {
	return &recordsRepo{
		byID: make(map[string]records.HealthRecord),
	}
}

func (r *recordsRepo) Create(ctx context.Context, rec records.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *recordsRepo) GetByID(ctx context.Context, id string) (records.HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return records.HealthRecord{}, records.ErrNotFound
	}
	return rec, nil
}

func (r *recordsRepo) ListByCat(ctx context.Context, catID string) ([]records.HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.HealthRecord, 0)
	for _, rec := range r.byID {
		if rec.CatID == catID {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	return out, nil
}

func (r *recordsRepo) Update(ctx context.Context, rec records.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return records.ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *recordsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return records.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

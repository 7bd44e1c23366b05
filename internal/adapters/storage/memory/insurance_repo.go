package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cat-health-api/internal/domain/insurance"
)

type insuranceRepo struct {
	mu   sync.RWMutex
	byID map[string]insurance.Entry
}

func NewInsuranceRepo() insurance.Repository {
	return &insuranceRepo{
		byID: make(map[string]insurance.Entry),
	}
}

func (r *insuranceRepo) Create(ctx context.Context, e insurance.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("entry already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *insuranceRepo) GetByID(ctx context.Context, id string) (insurance.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return insurance.Entry{}, insurance.ErrNotFound
	}
	return e, nil
}

func (r *insuranceRepo) ListByCat(ctx context.Context, catID string) ([]insurance.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]insurance.Entry, 0)
	for _, e := range r.byID {
		if e.CatID == catID {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})

	return out, nil
}

func (r *insuranceRepo) Update(ctx context.Context, e insurance.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; !exists {
		return insurance.ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *insuranceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return insurance.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

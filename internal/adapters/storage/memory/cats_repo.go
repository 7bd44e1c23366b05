package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cat-health-api/internal/domain/cats"
)

type catsRepo struct {
	mu   sync.RWMutex
	byID map[string]cats.Cat
}

func NewCatsRepo() cats.Repository {
	return &catsRepo{
		byID: make(map[string]cats.Cat),
	}
}

func (r *catsRepo) Create(ctx context.Context, c cats.Cat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("cat id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("cat already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *catsRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return c, nil
}

func (r *catsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cats.Cat, 0)
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID {
			out = append(out, c)
		}
	}

	// Stable order by creation time, matching the postgres adapter.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *catsRepo) Update(ctx context.Context, c cats.Cat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return cats.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *catsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return cats.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

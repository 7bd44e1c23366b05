package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cat-health-api/internal/domain/todos"
)

type todosRepo struct {
	mu   sync.RWMutex
	byID map[string]todos.Todo
}

func NewTodosRepo() todos.Repository {
	return &todosRepo{
		byID: make(map[string]todos.Todo),
	}
}

func (r *todosRepo) Create(ctx context.Context, t todos.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("todo id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("todo already exists")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *todosRepo) GetByID(ctx context.Context, id string) (todos.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return todos.Todo{}, todos.ErrNotFound
	}
	return t, nil
}

func (r *todosRepo) ListByUser(ctx context.Context, userID string) ([]todos.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]todos.Todo, 0)
	for _, t := range r.byID {
		if t.UserID == userID {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *todosRepo) Update(ctx context.Context, t todos.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; !exists {
		return todos.ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *todosRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return todos.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

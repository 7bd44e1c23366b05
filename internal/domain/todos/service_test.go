package todos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Todo
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Todo{}}
}

func (r *testRepo) Create(_ context.Context, t Todo) error {
	r.byID[t.ID] = t
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Todo, error) {
	t, ok := r.byID[id]
	if !ok {
		return Todo{}, ErrNotFound
	}
	return t, nil
}

func (r *testRepo) ListByUser(_ context.Context, userID string) ([]Todo, error) {
	out := make([]Todo, 0)
	for _, t := range r.byID {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *testRepo) Update(_ context.Context, t Todo) error {
	if _, ok := r.byID[t.ID]; !ok {
		return ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestCreateTrimsTitleAndAssignsID(t *testing.T) {
	svc := NewService(newTestRepo())

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	todo, err := svc.Create(context.Background(), "user-1", Input{
		Title:   "  flea treatment ",
		DueDate: &due,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, todo.ID)
	assert.Equal(t, "user-1", todo.UserID)
	assert.Equal(t, "flea treatment", todo.Title)
	assert.False(t, todo.Done)
	require.NotNil(t, todo.DueDate)
	assert.True(t, todo.DueDate.Equal(due))
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "user-1", Input{Title: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateReplacesAllFields(t *testing.T) {
	svc := NewService(newTestRepo())

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), "user-1", Input{
		Title:   "vet visit",
		DueDate: &due,
	})
	require.NoError(t, err)

	// Omitting the due date clears it; done flips on
	updated, err := svc.Update(context.Background(), created.ID, Input{
		Title: "vet visit",
		Done:  true,
	})
	require.NoError(t, err)

	assert.True(t, updated.Done)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, created.UserID, updated.UserID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateMissingTodo(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Update(context.Background(), "no-such-id", Input{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissingTodo(t *testing.T) {
	svc := NewService(newTestRepo())

	err := svc.Delete(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersByUser(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "user-1", Input{Title: "a"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-1", Input{Title: "b"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-2", Input{Title: "c"})
	require.NoError(t, err)

	mine, err := svc.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

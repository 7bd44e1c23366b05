package todos

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("todo not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type Input struct {
	Title   string
	Done    bool
	DueDate *time.Time
}

func (s *Service) Create(ctx context.Context, userID string, in Input) (Todo, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(in.Title) == "" {
		return Todo{}, ErrInvalidInput
	}

	now := s.now()
	t := Todo{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		Done:      in.Done,
		DueDate:   in.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Todo{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Todo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Todo{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Todo, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Todo, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Todo{}, ErrInvalidInput
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Todo{}, err
	}

	current.Title = strings.TrimSpace(in.Title)
	current.Done = in.Done
	current.DueDate = in.DueDate
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Todo{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

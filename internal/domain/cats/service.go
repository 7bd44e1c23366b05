package cats

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("cat not found")
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

type CreateInput struct {
	Name        string
	Breed       string
	Age         *int
	Weight      *float64
	Description string
	ImageURL    string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Cat, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Cat{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Cat{}, ErrInvalidInput
	}

	now := s.now()
	c := Cat{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         in.Age,
		Weight:      in.Weight,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Cat{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Cat, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Cat, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// UpdateInput carries the full replacement profile (PUT semantics).
type UpdateInput struct {
	Name        string
	Breed       string
	Age         *int
	Weight      *float64
	Description string
	ImageURL    string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Cat, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Cat{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Cat{}, err
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Breed = strings.TrimSpace(in.Breed)
	current.Age = in.Age
	current.Weight = in.Weight
	current.Description = strings.TrimSpace(in.Description)
	current.ImageURL = strings.TrimSpace(in.ImageURL)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Cat{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("record not found")
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
	Type        RecordType
	Date        time.Time
	Description string
	Notes       string
	FileURL     string
}

func (s *Service) Create(ctx context.Context, catID string, in CreateInput) (HealthRecord, error) {
	if strings.TrimSpace(catID) == "" {
		return HealthRecord{}, ErrInvalidInput
	}
	if !in.Type.IsValid() {
		return HealthRecord{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return HealthRecord{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Description) == "" {
		return HealthRecord{}, ErrInvalidInput
	}

	now := s.now()
	rec := HealthRecord{
		ID:          uuid.NewString(),
		CatID:       catID,
		Type:        in.Type,
		Date:        in.Date,
		Description: strings.TrimSpace(in.Description),
		Notes:       strings.TrimSpace(in.Notes),
		FileURL:     strings.TrimSpace(in.FileURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return HealthRecord{}, err
	}
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (HealthRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return HealthRecord{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByCat(ctx context.Context, catID string) ([]HealthRecord, error) {
	return s.repo.ListByCat(ctx, catID)
}

type UpdateInput struct {
	Type        RecordType
	Date        time.Time
	Description string
	Notes       string
	FileURL     string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (HealthRecord, error) {
	if !in.Type.IsValid() || in.Date.IsZero() || strings.TrimSpace(in.Description) == "" {
		return HealthRecord{}, ErrInvalidInput
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return HealthRecord{}, err
	}

	current.Type = in.Type
	current.Date = in.Date
	current.Description = strings.TrimSpace(in.Description)
	current.Notes = strings.TrimSpace(in.Notes)
	current.FileURL = strings.TrimSpace(in.FileURL)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return HealthRecord{}, err
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

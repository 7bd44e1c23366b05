package insurance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("insurance entry not found")
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
	Provider     string
	PolicyNumber string
	StartDate    time.Time
	EndDate      time.Time
	Premium      *float64
	Coverage     string
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Provider) == "" || strings.TrimSpace(in.PolicyNumber) == "" {
		return ErrInvalidInput
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return ErrInvalidInput
	}
	if in.EndDate.Before(in.StartDate) {
		return ErrInvalidInput
	}
	if in.Premium != nil && *in.Premium < 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) Create(ctx context.Context, catID string, in Input) (Entry, error) {
	if strings.TrimSpace(catID) == "" {
		return Entry{}, ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return Entry{}, err
	}

	now := s.now()
	e := Entry{
		ID:           uuid.NewString(),
		CatID:        catID,
		Provider:     strings.TrimSpace(in.Provider),
		PolicyNumber: strings.TrimSpace(in.PolicyNumber),
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Premium:      in.Premium,
		Coverage:     strings.TrimSpace(in.Coverage),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByCat(ctx context.Context, catID string) ([]Entry, error) {
	return s.repo.ListByCat(ctx, catID)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Entry, error) {
	if err := in.validate(); err != nil {
		return Entry{}, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}

	current.Provider = strings.TrimSpace(in.Provider)
	current.PolicyNumber = strings.TrimSpace(in.PolicyNumber)
	current.StartDate = in.StartDate
	current.EndDate = in.EndDate
	current.Premium = in.Premium
	current.Coverage = strings.TrimSpace(in.Coverage)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Entry{}, err
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

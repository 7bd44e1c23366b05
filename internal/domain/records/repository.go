package records

import "context"

type Repository interface {
	Create(ctx context.Context, rec HealthRecord) error
	GetByID(ctx context.Context, id string) (HealthRecord, error)
	// ListByCat returns the cat's records sorted by date descending.
	ListByCat(ctx context.Context, catID string) ([]HealthRecord, error)
	Update(ctx context.Context, rec HealthRecord) error
	Delete(ctx context.Context, id string) error
}

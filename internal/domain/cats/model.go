package cats

import "time"

// Cat is a pet profile. Age and Weight are nullable: nil means the owner
// never provided them.
type Cat struct {
	ID          string
	OwnerUserID string

	Name        string
	Breed       string
	Age         *int
	Weight      *float64
	Description string
	ImageURL    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

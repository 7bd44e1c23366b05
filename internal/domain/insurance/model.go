package insurance

import "time"

// Entry is an insurance policy covering one cat. Ownership is transitive
// through the cat, as with health records.
type Entry struct {
	ID    string
	CatID string

	Provider     string
	PolicyNumber string
	StartDate    time.Time
	EndDate      time.Time
	Premium      *float64
	Coverage     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

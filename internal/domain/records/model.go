package records

import "time"

// RecordType enumerates the supported health-record categories.
// @Enum vaccination, checkup, medication, other
type RecordType string

const (
	TypeVaccination RecordType = "vaccination"
	TypeCheckup     RecordType = "checkup"
	TypeMedication  RecordType = "medication"
	TypeOther       RecordType = "other"
)

func (t RecordType) IsValid() bool {
	switch t {
	case TypeVaccination, TypeCheckup, TypeMedication, TypeOther:
		return true
	}
	return false
}

// HealthRecord is one entry in a cat's health log. It carries no owner field:
// ownership is transitive through the cat.
type HealthRecord struct {
	ID    string
	CatID string

	Type        RecordType
	Date        time.Time
	Description string
	Notes       string
	FileURL     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

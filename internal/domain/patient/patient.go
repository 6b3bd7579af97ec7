package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender is validated case-insensitively but stored exactly as submitted.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

func (g Gender) IsValid() bool {
	switch Gender(strings.ToLower(strings.TrimSpace(string(g)))) {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	FirstName   string     `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName    string     `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Gender      Gender     `gorm:"column:gender;type:varchar(20);not null" json:"gender"`

	Phone   string `gorm:"column:phone;type:varchar(20)" json:"phone,omitempty"`
	Email   string `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	Address string `gorm:"column:address;type:text" json:"address,omitempty"`

	Notes string `gorm:"column:notes;type:text" json:"notes,omitempty"` // PHI
}

func (Patient) TableName() string {
	return "clinical.patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type CreatePatientCommand struct {
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Gender      Gender
	Phone       string
	Email       string
	Address     string
	Notes       string
}

// UpdatePatientCommand carries a partial update: nil fields are left untouched.
type UpdatePatientCommand struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *time.Time
	Gender      *Gender
	Phone       *string
	Email       *string
	Address     *string
	Notes       *string
}

// IsEmpty reports whether the command changes nothing.
func (c *UpdatePatientCommand) IsEmpty() bool {
	return c.FirstName == nil && c.LastName == nil && c.DateOfBirth == nil &&
		c.Gender == nil && c.Phone == nil && c.Email == nil &&
		c.Address == nil && c.Notes == nil
}

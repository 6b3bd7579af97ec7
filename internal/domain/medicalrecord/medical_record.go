package medicalrecord

import (
	"time"

	"github.com/google/uuid"
)

type MedicalRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	// The doctor who authored the record.
	DoctorID uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index" json:"doctor_id"`

	Diagnosis string `gorm:"column:diagnosis;type:text" json:"diagnosis,omitempty"`
	Treatment string `gorm:"column:treatment;type:text" json:"treatment,omitempty"`
	Notes     string `gorm:"column:notes;type:text" json:"notes,omitempty"` // PHI
}

func (MedicalRecord) TableName() string {
	return "clinical.medical_records"
}

type CreateRecordCommand struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Diagnosis string
	Treatment string
	Notes     string
}

// UpdateRecordCommand carries a partial update: nil fields keep prior values.
type UpdateRecordCommand struct {
	Diagnosis *string
	Treatment *string
	Notes     *string
}

// IsEmpty reports whether the command changes nothing.
func (c *UpdateRecordCommand) IsEmpty() bool {
	return c.Diagnosis == nil && c.Treatment == nil && c.Notes == nil
}

package assignment

import (
	"time"

	"github.com/google/uuid"
)

// PatientDoctor links one doctor to one patient. An active row authorizes
// the doctor to view and manage that patient's medical records.
type PatientDoctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// The pair is unique: the composite index backs the duplicate check so
	// two concurrent assigns cannot both commit.
	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;uniqueIndex:idx_patient_doctor_pair" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;uniqueIndex:idx_patient_doctor_pair;index" json:"doctor_id"`
}

func (PatientDoctor) TableName() string {
	return "clinical.patient_doctors"
}

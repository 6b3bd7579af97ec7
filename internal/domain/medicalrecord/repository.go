package medicalrecord

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *MedicalRecord) error

	// GetByID retrieves a record scoped to a patient. Returns
	// ErrRecordNotFound when the record does not exist or belongs to a
	// different patient.
	GetByID(ctx context.Context, patientID, recordID uuid.UUID) (*MedicalRecord, error)

	// ListByPatient returns all records for a patient.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*MedicalRecord, error)

	// Update applies a partial update to a record scoped to a patient.
	Update(ctx context.Context, patientID, recordID uuid.UUID, cmd *UpdateRecordCommand) (*MedicalRecord, error)

	// Delete removes the record row. No soft delete.
	Delete(ctx context.Context, patientID, recordID uuid.UUID) error
}

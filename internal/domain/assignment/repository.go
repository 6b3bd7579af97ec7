package assignment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new assignment. Returns ErrAlreadyAssigned when a
	// row for the pair exists (backed by the unique index, so the error is
	// raised even when two creates race past Exists).
	Create(ctx context.Context, a *PatientDoctor) error

	// Exists reports whether a row links the pair.
	Exists(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error)

	// Delete removes the assignment for the pair. Returns
	// ErrAssignmentNotFound if no row exists.
	Delete(ctx context.Context, patientID, doctorID uuid.UUID) error

	// ListByPatient returns all assignments for a patient.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*PatientDoctor, error)

	// ListByDoctor returns all assignments for a doctor.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*PatientDoctor, error)
}

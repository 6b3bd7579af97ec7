package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key. Returns ErrPatientNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// List returns all patients.
	List(ctx context.Context) ([]*Patient, error)

	// ListByIDs returns the patients whose ids appear in the given set.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Patient, error)

	// Update applies a partial update to an existing patient record.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdatePatientCommand) (*Patient, error)

	// Delete removes the patient row. Dependent assignment and medical
	// record rows are left in place.
	Delete(ctx context.Context, id uuid.UUID) error
}

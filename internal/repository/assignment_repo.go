package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicore/clinicore/internal/domain/assignment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

var _ assignment.Repository = (*AssignmentRepository)(nil)

func (r *AssignmentRepository) Create(ctx context.Context, a *assignment.PatientDoctor) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		// The unique index on (patient_id, doctor_id) catches assigns that
		// race past the Exists check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return assignment.ErrAlreadyAssigned
		}
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) Exists(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&assignment.PatientDoctor{}).
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking assignment: %w", err)
	}
	return count > 0, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, patientID, doctorID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&assignment.PatientDoctor{}, "patient_id = ? AND doctor_id = ?", patientID, doctorID)
	if res.Error != nil {
		return fmt.Errorf("deleting assignment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return assignment.ErrAssignmentNotFound
	}
	return nil
}

func (r *AssignmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*assignment.PatientDoctor, error) {
	var rows []*assignment.PatientDoctor
	if err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing assignments by patient: %w", err)
	}
	return rows, nil
}

func (r *AssignmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*assignment.PatientDoctor, error) {
	var rows []*assignment.PatientDoctor
	if err := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing assignments by doctor: %w", err)
	}
	return rows, nil
}

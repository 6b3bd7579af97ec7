package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicore/clinicore/internal/domain/medicalrecord"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository struct {
	db *gorm.DB
}

func NewMedicalRecordRepository(db *gorm.DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

var _ medicalrecord.Repository = (*MedicalRecordRepository)(nil)

func (r *MedicalRecordRepository) Create(ctx context.Context, rec *medicalrecord.MedicalRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("inserting medical record: %w", err)
	}
	return nil
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, patientID, recordID uuid.UUID) (*medicalrecord.MedicalRecord, error) {
	var rec medicalrecord.MedicalRecord
	err := r.db.WithContext(ctx).
		First(&rec, "id = ? AND patient_id = ?", recordID, patientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, medicalrecord.ErrRecordNotFound
		}
		return nil, fmt.Errorf("fetching medical record: %w", err)
	}
	return &rec, nil
}

func (r *MedicalRecordRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*medicalrecord.MedicalRecord, error) {
	var records []*medicalrecord.MedicalRecord
	if err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing medical records: %w", err)
	}
	return records, nil
}

func (r *MedicalRecordRepository) Update(ctx context.Context, patientID, recordID uuid.UUID, cmd *medicalrecord.UpdateRecordCommand) (*medicalrecord.MedicalRecord, error) {
	updates := map[string]any{}
	if cmd.Diagnosis != nil {
		updates["diagnosis"] = *cmd.Diagnosis
	}
	if cmd.Treatment != nil {
		updates["treatment"] = *cmd.Treatment
	}
	if cmd.Notes != nil {
		updates["notes"] = *cmd.Notes
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&medicalrecord.MedicalRecord{}).
			Where("id = ? AND patient_id = ?", recordID, patientID).
			Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("updating medical record: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, medicalrecord.ErrRecordNotFound
		}
	}

	return r.GetByID(ctx, patientID, recordID)
}

func (r *MedicalRecordRepository) Delete(ctx context.Context, patientID, recordID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&medicalrecord.MedicalRecord{}, "id = ? AND patient_id = ?", recordID, patientID)
	if res.Error != nil {
		return fmt.Errorf("deleting medical record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return medicalrecord.ErrRecordNotFound
	}
	return nil
}

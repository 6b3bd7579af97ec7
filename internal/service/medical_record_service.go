package service

import (
	"context"
	"fmt"

	"github.com/clinicore/clinicore/internal/domain"
	"github.com/clinicore/clinicore/internal/domain/assignment"
	"github.com/clinicore/clinicore/internal/domain/medicalrecord"
	"github.com/clinicore/clinicore/internal/domain/patient"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MedicalRecordService struct {
	repo           medicalrecord.Repository
	patientRepo    patient.Repository
	assignmentRepo assignment.Repository
	userRepo       UserRepository
	auditSvc       *AuditService
	log            *zap.Logger
}

func NewMedicalRecordService(repo medicalrecord.Repository, patientRepo patient.Repository, assignmentRepo assignment.Repository, userRepo UserRepository, auditSvc *AuditService, log *zap.Logger) *MedicalRecordService {
	return &MedicalRecordService{
		repo:           repo,
		patientRepo:    patientRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		auditSvc:       auditSvc,
		log:            log,
	}
}

// authorize gates every record operation. The acting user must be a doctor
// currently assigned to the patient; the check runs on each call and is
// never cached, so revoking an assignment takes effect immediately.
// Permission failures surface as ErrRecordAccessDenied, which the HTTP
// boundary reports as not-found to keep patient existence private.
func (s *MedicalRecordService) authorize(ctx context.Context, patientID uuid.UUID, actor Actor) error {
	if _, err := s.userRepo.GetByIDAndRole(ctx, actor.ID, domain.RoleDoctor); err != nil {
		return medicalrecord.ErrRecordAccessDenied
	}

	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return err
	}

	exists, err := s.assignmentRepo.Exists(ctx, patientID, actor.ID)
	if err != nil {
		return fmt.Errorf("checking assignment: %w", err)
	}
	if !exists {
		return medicalrecord.ErrRecordAccessDenied
	}
	return nil
}

func (s *MedicalRecordService) CreateRecord(ctx context.Context, cmd *medicalrecord.CreateRecordCommand, actor Actor) (*medicalrecord.MedicalRecord, error) {
	if err := s.authorize(ctx, cmd.PatientID, actor); err != nil {
		return nil, err
	}

	rec := &medicalrecord.MedicalRecord{
		PatientID: cmd.PatientID,
		DoctorID:  actor.ID,
		Diagnosis: cmd.Diagnosis,
		Treatment: cmd.Treatment,
		Notes:     cmd.Notes,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating medical record: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       actor.ID,
		UserRole:     string(actor.Role),
		Action:       "create",
		ResourceType: "medical_record",
		ResourceID:   rec.ID.String(),
		IPAddress:    actor.IP,
	})

	s.log.Info("medical record created",
		zap.String("record_id", rec.ID.String()),
		zap.String("patient_id", cmd.PatientID.String()),
		zap.String("doctor_id", actor.ID.String()),
	)

	return rec, nil
}

func (s *MedicalRecordService) ListRecords(ctx context.Context, patientID uuid.UUID, actor Actor) ([]*medicalrecord.MedicalRecord, error) {
	if err := s.authorize(ctx, patientID, actor); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       actor.ID,
		UserRole:     string(actor.Role),
		Action:       "read",
		ResourceType: "medical_record",
		ResourceID:   patientID.String(),
		IPAddress:    actor.IP,
	})

	return records, nil
}

func (s *MedicalRecordService) GetRecord(ctx context.Context, patientID, recordID uuid.UUID, actor Actor) (*medicalrecord.MedicalRecord, error) {
	if err := s.authorize(ctx, patientID, actor); err != nil {
		return nil, err
	}

	rec, err := s.repo.GetByID(ctx, patientID, recordID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       actor.ID,
		UserRole:     string(actor.Role),
		Action:       "read",
		ResourceType: "medical_record",
		ResourceID:   recordID.String(),
		IPAddress:    actor.IP,
	})

	return rec, nil
}

// UpdateRecord merges only the fields present in the command.
func (s *MedicalRecordService) UpdateRecord(ctx context.Context, patientID, recordID uuid.UUID, cmd *medicalrecord.UpdateRecordCommand, actor Actor) (*medicalrecord.MedicalRecord, error) {
	if err := s.authorize(ctx, patientID, actor); err != nil {
		return nil, err
	}

	if cmd.IsEmpty() {
		return s.repo.GetByID(ctx, patientID, recordID)
	}

	rec, err := s.repo.Update(ctx, patientID, recordID, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       actor.ID,
		UserRole:     string(actor.Role),
		Action:       "update",
		ResourceType: "medical_record",
		ResourceID:   recordID.String(),
		IPAddress:    actor.IP,
	})

	return rec, nil
}

func (s *MedicalRecordService) DeleteRecord(ctx context.Context, patientID, recordID uuid.UUID, actor Actor) error {
	if err := s.authorize(ctx, patientID, actor); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, patientID, recordID); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       actor.ID,
		UserRole:     string(actor.Role),
		Action:       "delete",
		ResourceType: "medical_record",
		ResourceID:   recordID.String(),
		IPAddress:    actor.IP,
	})

	return nil
}

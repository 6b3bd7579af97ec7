package service

import (
	"context"
	"fmt"

	"github.com/clinicore/clinicore/internal/domain"
	"github.com/clinicore/clinicore/internal/domain/assignment"
	"github.com/clinicore/clinicore/internal/domain/patient"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier pushes a best-effort text message to a connected user. The
// returned flag reports whether a connection received the message.
type Notifier interface {
	Send(userID uuid.UUID, message string) bool
}

type AssignmentService struct {
	repo        assignment.Repository
	patientRepo patient.Repository
	userRepo    UserRepository
	notifier    Notifier
	auditSvc    *AuditService
	log         *zap.Logger
}

func NewAssignmentService(repo assignment.Repository, patientRepo patient.Repository, userRepo UserRepository, notifier Notifier, auditSvc *AuditService, log *zap.Logger) *AssignmentService {
	return &AssignmentService{
		repo:        repo,
		patientRepo: patientRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		auditSvc:    auditSvc,
		log:         log,
	}
}

// Assign links a doctor to a patient and notifies the doctor's live
// connection, if any. The duplicate check is re-enforced by the unique
// index on the pair, so racing assigns cannot both commit.
func (s *AssignmentService) Assign(ctx context.Context, patientID, doctorID uuid.UUID, actor Actor) (*assignment.PatientDoctor, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	doctor, err := s.userRepo.GetByIDAndRole(ctx, doctorID, domain.RoleDoctor)
	if err != nil {
		return nil, assignment.ErrDoctorNotFound
	}

	exists, err := s.repo.Exists(ctx, patientID, doctorID)
	if err != nil {
		return nil, fmt.Errorf("checking existing assignment: %w", err)
	}
	if exists {
		return nil, assignment.ErrAlreadyAssigned
	}

	a := &assignment.PatientDoctor{
		PatientID: patientID,
		DoctorID:  doctorID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	// Best-effort: an offline doctor is not an error.
	message := fmt.Sprintf("New patient assigned from: %s", doctor.Email)
	delivered := s.notifier.Send(doctorID, message)

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       actor.ID,
		UserRole:     string(actor.Role),
		Action:       "assign",
		ResourceType: "assignment",
		ResourceID:   a.ID.String(),
		IPAddress:    actor.IP,
	})

	s.log.Info("doctor assigned to patient",
		zap.String("patient_id", patientID.String()),
		zap.String("doctor_id", doctorID.String()),
		zap.Bool("notified", delivered),
	)

	return a, nil
}

func (s *AssignmentService) Unassign(ctx context.Context, patientID, doctorID uuid.UUID, actor Actor) error {
	if err := s.repo.Delete(ctx, patientID, doctorID); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       actor.ID,
		UserRole:     string(actor.Role),
		Action:       "delete",
		ResourceType: "assignment",
		ResourceID:   patientID.String() + ":" + doctorID.String(),
		IPAddress:    actor.IP,
	})

	s.log.Info("doctor unassigned from patient",
		zap.String("patient_id", patientID.String()),
		zap.String("doctor_id", doctorID.String()),
	)

	return nil
}

// ListAssignedDoctors returns the doctors linked to a patient via the join
// table. Pure lookup, no side effects.
func (s *AssignmentService) ListAssignedDoctors(ctx context.Context, patientID uuid.UUID) ([]*domain.User, error) {
	rows, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.DoctorID)
	}
	return s.userRepo.ListByIDs(ctx, ids)
}

// ListAssignedPatients returns the patients linked to a doctor via the join
// table. Pure lookup, no side effects.
func (s *AssignmentService) ListAssignedPatients(ctx context.Context, doctorID uuid.UUID) ([]*patient.Patient, error) {
	rows, err := s.repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PatientID)
	}
	return s.patientRepo.ListByIDs(ctx, ids)
}

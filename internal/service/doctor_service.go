package service

import (
	"context"

	"github.com/clinicore/clinicore/internal/domain"
	"github.com/clinicore/clinicore/internal/domain/assignment"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DoctorService exposes read-only views over users with the doctor role.
type DoctorService struct {
	userRepo UserRepository
	log      *zap.Logger
}

func NewDoctorService(userRepo UserRepository, log *zap.Logger) *DoctorService {
	return &DoctorService{userRepo: userRepo, log: log}
}

func (s *DoctorService) ListDoctors(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListByRole(ctx, domain.RoleDoctor)
}

// GetDoctor fetches a user by id, constrained to the doctor role. A user
// that exists under another role is still reported as not found.
func (s *DoctorService) GetDoctor(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	doctor, err := s.userRepo.GetByIDAndRole(ctx, id, domain.RoleDoctor)
	if err != nil {
		return nil, assignment.ErrDoctorNotFound
	}
	return doctor, nil
}

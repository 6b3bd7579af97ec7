package service

import (
	"github.com/clinicore/clinicore/internal/domain"
	"github.com/google/uuid"
)

// Actor identifies the authenticated principal performing an operation,
// plus the request metadata the audit trail wants.
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
	IP   string
}

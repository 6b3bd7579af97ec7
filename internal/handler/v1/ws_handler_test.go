package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinicore/clinicore/config"
	"github.com/clinicore/clinicore/internal/domain"
	"github.com/clinicore/clinicore/internal/notify"
	"github.com/clinicore/clinicore/internal/service"
	"github.com/clinicore/clinicore/pkg/auth"
	"github.com/clinicore/clinicore/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The prometheus default registry rejects duplicate collectors, so the
// package shares one across tests.
var wsTestCollector = metrics.NewCollector("wstest")

type stubUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetByIDAndRole(_ context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.Role != role {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateLoginAttempt(_ context.Context, _ uuid.UUID, _ bool) error {
	return nil
}

type stubAuditRepo struct{}

func (stubAuditRepo) Create(_ context.Context, _ *domain.AuditLog) error { return nil }

type wsFixture struct {
	router     *gin.Engine
	registry   *notify.Registry
	jwtManager *auth.JWTManager
	users      *stubUserRepo
}

func newWSFixture() *wsFixture {
	jwtManager := auth.NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-at-least-32-bytes-long!",
		Issuer:          "clinicore-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	users := &stubUserRepo{users: make(map[uuid.UUID]*domain.User)}
	auditSvc := service.NewAuditService(stubAuditRepo{}, nil, zap.NewNop())
	authSvc := service.NewAuthService(users, jwtManager, auditSvc, zap.NewNop())
	registry := notify.NewRegistry(zap.NewNop())

	router := gin.New()
	router.GET("/ws", NewWSHandler(authSvc, registry, wsTestCollector, zap.NewNop()).Serve)

	return &wsFixture{router: router, registry: registry, jwtManager: jwtManager, users: users}
}

func (f *wsFixture) handshake(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	if token != "" {
		req.Header.Set("Sec-WebSocket-Protocol", token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// A handshake that fails token validation must reject before the upgrade
// and leave nothing in the registry.
func TestServe_RejectsWithoutRegistering(t *testing.T) {
	f := newWSFixture()

	inactive := &domain.User{ID: uuid.New(), Email: "gone@clinic.example", Role: domain.RoleDoctor, IsActive: false}
	f.users.users[inactive.ID] = inactive

	unknownPair, err := f.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID: uuid.New(), Email: "ghost@clinic.example", Role: domain.RoleDoctor,
	})
	if err != nil {
		t.Fatalf("generating pair: %v", err)
	}
	inactivePair, err := f.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID: inactive.ID, Email: inactive.Email, Role: inactive.Role,
	})
	if err != nil {
		t.Fatalf("generating pair: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"malformed token", "not.a.jwt"},
		{"token for unknown user", unknownPair.AccessToken},
		{"refresh token instead of access", unknownPair.RefreshToken},
		{"token for inactive user", inactivePair.AccessToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.handshake(t, tt.token)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
			if got := f.registry.ClientCount(); got != 0 {
				t.Errorf("registry count = %d, want 0", got)
			}
		})
	}
}

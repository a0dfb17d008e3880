//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"wellness-booking/internal/pkg/config"
	"wellness-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role jwt.Role) string {
	t.Helper()
	token, err := jwt.Sign(h.cfg.Secret, userID, role, time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role jwt.Role) string {
	t.Helper()
	token, err := jwt.Sign(h.cfg.Secret, userID, role, -time.Minute)
	require.NoError(t, err)
	return token
}

// NewCustomer returns a fresh customer id with a valid bearer token.
func (h *JWTHelper) NewCustomer(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, h.GenerateToken(t, id, jwt.RoleCustomer)
}

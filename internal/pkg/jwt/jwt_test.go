//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"wellness-booking/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "unit-secret"

func TestVerifier_ValidateToken(t *testing.T) {
	verifier := jwt.NewVerifier(secret)
	userID := uuid.New()

	t.Run("signed token round trips", func(t *testing.T) {
		token, err := jwt.Sign(secret, userID, jwt.RoleStaff, time.Minute)
		require.NoError(t, err)

		claims, err := verifier.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "staff", claims.Role)
	})

	expired, err := jwt.Sign(secret, userID, jwt.RoleCustomer, -time.Minute)
	require.NoError(t, err)
	foreign, err := jwt.Sign("other-secret", userID, jwt.RoleCustomer, time.Minute)
	require.NoError(t, err)
	anonymous, err := jwt.Sign(secret, uuid.Nil, jwt.RoleCustomer, time.Minute)
	require.NoError(t, err)
	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, jwt.Claims{UserID: userID}).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		errIs error
	}{
		{name: "expired", token: expired, errIs: jwt.ErrExpiredToken},
		{name: "wrong secret", token: foreign, errIs: jwt.ErrInvalidToken},
		{name: "missing subject", token: anonymous, errIs: jwt.ErrInvalidToken},
		{name: "unsigned", token: none, errIs: jwt.ErrInvalidToken},
		{name: "garbage", token: "not.a.token", errIs: jwt.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.ValidateToken(tt.token)
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in    string
		want  jwt.Role
		errIs error
	}{
		{in: "customer", want: jwt.RoleCustomer},
		{in: "staff", want: jwt.RoleStaff},
		{in: "admin", want: jwt.RoleAdmin},
		{in: "", want: jwt.RoleCustomer},
		{in: "root", errIs: jwt.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := jwt.ParseRole(tt.in)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

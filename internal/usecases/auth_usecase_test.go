package usecases

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestAuthUsecase_Login(t *testing.T) {
	uc, err := NewAuthUsecase("root", "ComplexPass123!", "secret")
	require.NoError(t, err)

	t.Run("should issue a token signed with the secret", func(t *testing.T) {
		req := require.New(t)
		fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		uc.now = func() time.Time { return fixed }
		defer func() { uc.now = time.Now }()

		tokenString, err := uc.Login("root", "ComplexPass123!")
		req.NoError(err)

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		}, jwt.WithoutClaimsValidation())
		req.NoError(err)
		req.Equal("root", claims["sub"])
		req.Equal("admin", claims["role"])
		req.Equal(float64(fixed.Add(24*time.Hour).Unix()), claims["exp"])
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		req := require.New(t)
		token, err := uc.Login("root", "nope")
		req.ErrorIs(err, ErrInvalidCredentials)
		req.Empty(token)
	})

	t.Run("should reject an unknown user", func(t *testing.T) {
		req := require.New(t)
		_, err := uc.Login("alice", "ComplexPass123!")
		req.ErrorIs(err, ErrInvalidCredentials)
	})
}

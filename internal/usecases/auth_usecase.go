package usecases

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"newbie_greeter/internal/entities"
)

const tokenLifetime = 24 * time.Hour

// AuthUsecase authenticates the single dashboard admin.
type AuthUsecase struct {
	admin     entities.User
	jwtSecret []byte
	now       func() time.Time
}

// NewAuthUsecase hashes the configured admin password once at startup.
func NewAuthUsecase(username, password, secret string) (*AuthUsecase, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AuthUsecase{
		admin: entities.User{
			Username:     username,
			PasswordHash: string(hashed),
			Role:         "admin",
		},
		jwtSecret: []byte(secret),
		now:       time.Now,
	}, nil
}

func (uc *AuthUsecase) Login(username, password string) (string, error) {
	if username != uc.admin.Username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uc.admin.Username,
		"role": uc.admin.Role,
		"exp":  uc.now().Add(tokenLifetime).Unix(),
	})

	tokenString, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

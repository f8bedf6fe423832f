package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "studytrack/internal/errors"
	"studytrack/internal/model"
	"studytrack/internal/repository"
)

const adminSubject = "admin"

// AuthService guards the administrative API with an optional bearer token.
// When no admin password hash is stored in settings, authentication is
// disabled and the middleware passes everything through; the report API is
// never authenticated either way.
type AuthService struct {
	settings  *repository.SettingsRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(settings *repository.SettingsRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		settings:  settings,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Enabled reports whether an admin password has been configured. Read errors
// count as enabled so a storage hiccup fails closed.
func (s *AuthService) Enabled(ctx context.Context) bool {
	_, err := s.settings.Get(ctx, model.SettingAdminPasswordHash)
	return err != repository.ErrNotFound
}

func (s *AuthService) Login(ctx context.Context, password string) (string, *apperrors.APIError) {
	hash, err := s.settings.Get(ctx, model.SettingAdminPasswordHash)
	if err == repository.ErrNotFound {
		return "", apperrors.BadRequest("auth_disabled", "no admin password is configured")
	}
	if err != nil {
		return "", apperrors.Internal("failed to read admin password")
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", apperrors.Unauthorized("invalid password")
	}

	return s.issueToken()
}

// SetPassword stores a new admin password hash. An empty password clears the
// hash and disables authentication again.
func (s *AuthService) SetPassword(ctx context.Context, password string) *apperrors.APIError {
	if password == "" {
		if err := s.settings.Delete(ctx, model.SettingAdminPasswordHash); err != nil {
			return apperrors.Internal("failed to clear admin password")
		}
		return nil
	}
	if len(password) < 6 {
		return apperrors.BadRequest("invalid_password", "password must be at least 6 characters")
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("failed to secure password")
	}
	if err := s.settings.Set(ctx, model.SettingAdminPasswordHash, string(hashBytes)); err != nil {
		return apperrors.Internal("failed to store admin password")
	}
	return nil
}

func (s *AuthService) ParseToken(tokenString string) *apperrors.APIError {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return apperrors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != adminSubject {
		return apperrors.Unauthorized("invalid token subject")
	}
	return nil
}

func (s *AuthService) issueToken() (string, *apperrors.APIError) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token")
	}
	return signed, nil
}

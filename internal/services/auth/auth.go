// Package services содержит логику бизнес-уровня для работы с операторами и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ayoubkcm/fleet-backoffice/internal/lib/jwt"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/password"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с операторами в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового оператора и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (uuid.UUID, error)

	// GetUserByUsername возвращает оператора по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового оператора с хэшированием пароля.
func (s *AuthService) Register(ctx context.Context, username, rawPassword string) (uuid.UUID, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return uuid.Nil, err
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль оператора и генерирует JWT.
// Несуществующий логин и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user.Username)
}

// ValidateToken проверяет JWT и возвращает username оператора.
func (s *AuthService) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

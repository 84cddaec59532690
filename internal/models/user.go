package models

import (
	"time"

	"github.com/google/uuid"
)

// User оператор бэк-офиса проката.
type User struct {
	ID           uuid.UUID // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time
}

// DummyUser используется для приёма учётных данных из JSON-запроса.
type DummyUser struct {
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType вид документа клиента.
type DocumentType string

const (
	// DocumentTypePassport скан паспорта.
	DocumentTypePassport DocumentType = "passport"
	// DocumentTypeLicense скан водительского удостоверения.
	DocumentTypeLicense DocumentType = "license"
	// DocumentTypeOther прочие документы.
	DocumentTypeOther DocumentType = "other"
)

// Document метаданные документа клиента. Сам файл живёт во внешнем
// хранилище, здесь хранится только ссылка на него.
type Document struct {
	ID        uuid.UUID    `json:"id"`
	ClientID  uuid.UUID    `json:"client_id"`
	URL       string       `json:"url"`
	Type      DocumentType `json:"type"`
	CreatedAt time.Time    `json:"created_at"`

	// Денормализованное имя клиента для списка.
	ClientName string `json:"client_name,omitempty"`
}

// DummyDocument используется для приёма данных документа из JSON-запроса.
type DummyDocument struct {
	ClientID string `json:"client_id" validate:"required,uuid"`
	URL      string `json:"url" validate:"required,url"`
	Type     string `json:"type,omitempty" validate:"omitempty,oneof=passport license other"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Client клиент проката. Для логики бронирования это внешняя сущность,
// на которую ссылается Rental; поля документов нужны для договора.
type Client struct {
	ID                 uuid.UUID `json:"id"`
	FullName           string    `json:"full_name"`
	PassportID         string    `json:"passport_id,omitempty"`
	DrivingLicense     string    `json:"driving_license,omitempty"`
	Address            string    `json:"address,omitempty"`
	IDNumber           string    `json:"id_number,omitempty"`
	DateOfBirth        string    `json:"date_of_birth,omitempty"`
	LicenseExpiryDate  string    `json:"license_expiry_date,omitempty"`
	PassportExpiryDate string    `json:"passport_expiry_date,omitempty"`
	PassportImage      string    `json:"passport_image,omitempty"`
	LicenseImage       string    `json:"license_image,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// DummyClient используется для приёма данных клиента из JSON-запроса.
type DummyClient struct {
	FullName           string `json:"full_name" validate:"required"`
	PassportID         string `json:"passport_id,omitempty"`
	DrivingLicense     string `json:"driving_license,omitempty"`
	Address            string `json:"address,omitempty"`
	IDNumber           string `json:"id_number,omitempty"`
	DateOfBirth        string `json:"date_of_birth,omitempty"`
	LicenseExpiryDate  string `json:"license_expiry_date,omitempty"`
	PassportExpiryDate string `json:"passport_expiry_date,omitempty"`
	PassportImage      string `json:"passport_image,omitempty"`
	LicenseImage       string `json:"license_image,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// RentalStatus статус проката. Переходы только вперёд:
// reserved -> rented -> returned, либо сразу в returned. Из returned выхода нет.
type RentalStatus string

const (
	// RentalStatusReserved бронь до выдачи автомобиля.
	RentalStatusReserved RentalStatus = "reserved"
	// RentalStatusRented автомобиль выдан клиенту.
	RentalStatusRented RentalStatus = "rented"
	// RentalStatusReturned прокат завершён, терминальный статус.
	RentalStatusReturned RentalStatus = "returned"
)

// Active сообщает, учитывается ли прокат при проверке пересечений.
func (s RentalStatus) Active() bool {
	return s == RentalStatusReserved || s == RentalStatusRented
}

// Rental основная модель проката. Даты хранятся как абсолютные UTC-моменты,
// все преобразования в бизнес-время происходят на границе HTTP.
type Rental struct {
	ID          uuid.UUID    `json:"id"`
	CarID       uuid.UUID    `json:"car_id"`
	ClientID    uuid.UUID    `json:"client_id"`
	StartDate   time.Time    `json:"start_date"`
	ReturnDate  time.Time    `json:"return_date"`
	RentalPrice float64      `json:"rental_price"`
	Status      RentalStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// RentalInfo прокат с денормализованными полями автомобиля и клиента,
// чтобы список и уведомления не требовали дополнительных запросов.
type RentalInfo struct {
	Rental
	CarModel    string `json:"car_model"`
	PlateNumber string `json:"plate_number"`
	ClientName  string `json:"client_name"`

	// StartDateLocal и ReturnDateLocal заполняются сервисом: те же моменты,
	// отрисованные настенными часами бизнес-зоны для полей ввода.
	StartDateLocal  string `json:"start_date_local,omitempty"`
	ReturnDateLocal string `json:"return_date_local,omitempty"`
}

// DummyRental используется для приёма данных проката из JSON-запроса.
// Даты приходят строками настенного времени бизнес-зоны в формате 2006-01-02T15:04.
type DummyRental struct {
	CarID       string  `json:"car_id" validate:"required,uuid"`
	ClientID    string  `json:"client_id" validate:"required,uuid"`
	StartDate   string  `json:"start_date" validate:"required"`
	ReturnDate  string  `json:"return_date" validate:"required"`
	RentalPrice float64 `json:"rental_price" validate:"omitempty,gte=0"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=reserved rented"`
}

// DummyRentalStatus используется для смены только статуса проката.
type DummyRentalStatus struct {
	Status string `json:"status" validate:"required,oneof=reserved rented returned"`
}

// DummyAvailability запрос явной проверки доступности автомобиля.
type DummyAvailability struct {
	CarID           string `json:"car_id" validate:"required,uuid"`
	StartDate       string `json:"start_date" validate:"required"`
	ReturnDate      string `json:"return_date" validate:"required"`
	ExcludeRentalID string `json:"exclude_rental_id,omitempty" validate:"omitempty,uuid"`
}

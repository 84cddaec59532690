// Package models содержит доменные структуры автопарка: автомобили, клиенты,
// прокаты, расходы, а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CarStatus статус автомобиля. Поле денормализовано: оно отражает статус
// последнего активного проката и пересчитывается при каждом изменении проката,
// но оператор может выставить его вручную (на этом строится auto-heal).
type CarStatus string

const (
	// CarStatusAvailable автомобиль свободен.
	CarStatusAvailable CarStatus = "available"
	// CarStatusRented автомобиль выдан клиенту.
	CarStatusRented CarStatus = "rented"
	// CarStatusReserved автомобиль забронирован.
	CarStatusReserved CarStatus = "reserved"
)

// Car основная модель автомобиля.
type Car struct {
	ID          uuid.UUID `json:"id"`
	Model       string    `json:"model"`
	PlateNumber string    `json:"plate_number"`
	Status      CarStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	// CurrentRental окно последнего активного проката, nil если машина свободна.
	CurrentRental *RentalWindow `json:"current_rental,omitempty"`
	// TotalRented суммарное время, проведённое автомобилем в прокатах.
	TotalRented time.Duration `json:"total_rented_ms"`
}

// RentalWindow интервал проката для отображения в списке автомобилей.
type RentalWindow struct {
	StartDate  time.Time `json:"start_date"`
	ReturnDate time.Time `json:"return_date"`
}

// CarStats агрегаты по статусам автопарка для дашборда.
type CarStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Rented    int `json:"rented"`
	Reserved  int `json:"reserved"`
}

// DummyCar используется для приёма данных автомобиля из JSON-запроса.
type DummyCar struct {
	Model       string `json:"model" validate:"required"`
	PlateNumber string `json:"plate_number" validate:"required"`
	// Status опциональный ручной статус, применяется только при обновлении.
	Status string `json:"status,omitempty" validate:"omitempty,oneof=available rented reserved"`
}

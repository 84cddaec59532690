package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense расход автопарка, опционально привязанный к автомобилю.
type Expense struct {
	ID          uuid.UUID  `json:"id"`
	Category    string     `json:"category"`
	Amount      float64    `json:"amount"`
	ExpenseDate time.Time  `json:"expense_date"`
	CarID       *uuid.UUID `json:"car_id,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// Денормализованные поля автомобиля для отображения, пустые если расход общий.
	CarModel    string `json:"car_model,omitempty"`
	PlateNumber string `json:"plate_number,omitempty"`
}

// DummyExpense используется для приёма данных расхода из JSON-запроса.
// Дата приходит строкой настенного времени бизнес-зоны.
type DummyExpense struct {
	Category    string  `json:"category" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	ExpenseDate string  `json:"expense_date" validate:"required"`
	CarID       string  `json:"car_id,omitempty" validate:"omitempty,uuid"`
	Description string  `json:"description,omitempty"`
}

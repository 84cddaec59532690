package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

func TestStorage_ReadRental(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	ret := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	carID := factory.CreateCar(t, "Dacia Logan", "12345-A-6", models.CarStatusRented)
	clientID := factory.CreateClient(t, "Ahmed Benali")
	rentalID := factory.CreateRental(t, carID, clientID, start, ret, 1500, models.RentalStatusRented)

	got, err := storage.ReadRental(context.Background(), rentalID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rentalID, got.ID)
	assert.Equal(t, "Dacia Logan", got.CarModel)
	assert.Equal(t, "12345-A-6", got.PlateNumber)
	assert.Equal(t, "Ahmed Benali", got.ClientName)
	assert.True(t, start.Equal(got.StartDate))
	assert.True(t, ret.Equal(got.ReturnDate))

	_, err = storage.ReadRental(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRentalNotFound)
}

func TestStorage_ListRentals(t *testing.T) {
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	july := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		from      time.Time
		to        time.Time
		filter    models.ListFilter
		wantCount int
	}{
		{
			name:      "all rentals without filter",
			wantCount: 3,
		},
		{
			name:      "rentals starting in june",
			from:      june,
			to:        july,
			wantCount: 2,
		},
		{
			name:      "rentals starting in july",
			from:      july,
			to:        july.AddDate(0, 1, 0),
			wantCount: 1,
		},
		{
			name:      "search by car model",
			filter:    models.ListFilter{Search: "logan"},
			wantCount: 3,
		},
		{
			name:      "search misses",
			filter:    models.ListFilter{Search: "clio"},
			wantCount: 0,
		},
		{
			name:      "pagination window",
			filter:    models.ListFilter{Limit: 1, Offset: 1},
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			carID := factory.CreateCar(t, "Dacia Logan", "12345-A-6", models.CarStatusAvailable)
			clientID := factory.CreateClient(t, "Test Client")

			factory.CreateRental(t, carID, clientID,
				june.AddDate(0, 0, 1), june.AddDate(0, 0, 3), 100, models.RentalStatusReturned)
			factory.CreateRental(t, carID, clientID,
				june.AddDate(0, 0, 10), june.AddDate(0, 0, 12), 100, models.RentalStatusReturned)
			factory.CreateRental(t, carID, clientID,
				july.AddDate(0, 0, 1), july.AddDate(0, 0, 3), 100, models.RentalStatusReturned)

			got, err := storage.ListRentals(context.Background(), tt.from, tt.to, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestStorage_FindActiveRentals(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	clientID := factory.CreateClient(t, "Test Client")

	carA := factory.CreateCar(t, "Dacia Logan", "11111-A-6", models.CarStatusReserved)
	factory.CreateRental(t, carA, clientID,
		now.Add(24*time.Hour), now.Add(72*time.Hour), 100, models.RentalStatusReserved)

	carB := factory.CreateCar(t, "Renault Clio", "22222-B-6", models.CarStatusRented)
	factory.CreateRental(t, carB, clientID,
		now.Add(-72*time.Hour), now.Add(-time.Hour), 100, models.RentalStatusRented)

	carC := factory.CreateCar(t, "Peugeot 208", "33333-C-6", models.CarStatusAvailable)
	factory.CreateRental(t, carC, clientID,
		now.Add(-96*time.Hour), now.Add(-80*time.Hour), 100, models.RentalStatusReturned)

	active, err := storage.FindActiveRentals(context.Background())
	require.NoError(t, err)
	assert.Len(t, active, 2)

	overdue, err := storage.FindOverdueRentals(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Renault Clio", overdue[0].CarModel)
	assert.Equal(t, models.RentalStatusRented, overdue[0].Status)
}

func TestStorage_UpdateRentalInterval(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	ret := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	carID := factory.CreateCar(t, "Dacia Logan", "12345-A-6", models.CarStatusRented)
	clientID := factory.CreateClient(t, "Test Client")
	rentalID := factory.CreateRental(t, carID, clientID, start, ret, 1500, models.RentalStatusRented)

	// Сдвиг собственного интервала не конфликтует сам с собой
	rowsAffected, err := storage.UpdateRentalInterval(context.Background(), rentalID,
		carID, clientID, start.Add(time.Hour), ret.Add(time.Hour), 1600)
	require.NoError(t, err)
	assert.Equal(t, 1, rowsAffected)

	got, err := storage.ReadRental(context.Background(), rentalID)
	require.NoError(t, err)
	assert.True(t, start.Add(time.Hour).Equal(got.StartDate))
	assert.InDelta(t, 1600.0, got.RentalPrice, 0.001)

	// Статус автомобиля при смене интервала не меняется
	verification := NewTestVerification(storage)
	verification.VerifyCarStatus(t, carID, models.CarStatusRented)

	// Пересечение с чужим активным прокатом на том же автомобиле отклоняется
	otherID := factory.CreateRental(t, carID, clientID,
		ret.Add(24*time.Hour), ret.Add(72*time.Hour), 100, models.RentalStatusReserved)
	_, err = storage.UpdateRentalInterval(context.Background(), otherID,
		carID, clientID, start.Add(time.Hour), ret.Add(time.Hour), 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRentalConflict)

	_, err = storage.UpdateRentalInterval(context.Background(), uuid.New(),
		carID, clientID, start, ret, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRentalNotFound)
}

func TestStorage_UpdateRentalInterval_MoveToAnotherCar(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	ret := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	clientID := factory.CreateClient(t, "Test Client")
	otherClientID := factory.CreateClient(t, "Other Client")
	oldCarID := factory.CreateCar(t, "Dacia Logan", "11111-A-6", models.CarStatusReserved)
	newCarID := factory.CreateCar(t, "Renault Clio", "22222-B-6", models.CarStatusReserved)

	rentalID := factory.CreateRental(t, oldCarID, clientID, start, ret, 1500, models.RentalStatusReserved)

	rowsAffected, err := storage.UpdateRentalInterval(context.Background(), rentalID,
		newCarID, otherClientID, start, ret, 1500)
	require.NoError(t, err)
	assert.Equal(t, 1, rowsAffected)

	// Прокат переехал на новый автомобиль вместе с клиентом
	got, err := storage.ReadRental(context.Background(), rentalID)
	require.NoError(t, err)
	assert.Equal(t, newCarID, got.CarID)
	assert.Equal(t, otherClientID, got.ClientID)
	assert.Equal(t, "Renault Clio", got.CarModel)
	assert.Equal(t, "Other Client", got.ClientName)

	// Пересечения проверяются против целевого автомобиля: занятый интервал
	// новой машины отклоняет перенос, хотя старая машина свободна.
	blockedID := factory.CreateRental(t, oldCarID, clientID,
		ret.Add(24*time.Hour), ret.Add(72*time.Hour), 100, models.RentalStatusReserved)
	_, err = storage.UpdateRentalInterval(context.Background(), blockedID,
		newCarID, clientID, start.Add(time.Hour), ret.Add(time.Hour), 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRentalConflict)
}

func TestStorage_ListCars(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	clientID := factory.CreateClient(t, "Test Client")

	carA := factory.CreateCar(t, "Dacia Logan", "11111-A-6", models.CarStatusRented)
	// Завершённый прокат на 48 часов и активный на 24 часа
	factory.CreateRental(t, carA, clientID,
		now.Add(-96*time.Hour), now.Add(-48*time.Hour), 100, models.RentalStatusReturned)
	factory.CreateRental(t, carA, clientID,
		now, now.Add(24*time.Hour), 100, models.RentalStatusRented)

	factory.CreateCar(t, "Renault Clio", "22222-B-6", models.CarStatusAvailable)

	got, err := storage.ListCars(context.Background(), models.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	byPlate := make(map[string]*models.Car, len(got))
	for _, car := range got {
		byPlate[car.PlateNumber] = car
	}

	rented := byPlate["11111-A-6"]
	require.NotNil(t, rented)
	require.NotNil(t, rented.CurrentRental)
	assert.True(t, now.Equal(rented.CurrentRental.StartDate))
	assert.Equal(t, 72*time.Hour, rented.TotalRented)

	free := byPlate["22222-B-6"]
	require.NotNil(t, free)
	assert.Nil(t, free.CurrentRental)
	assert.Equal(t, time.Duration(0), free.TotalRented)
}

func TestStorage_CountCarsByStatus(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateCar(t, "Dacia Logan", "11111-A-6", models.CarStatusAvailable)
	factory.CreateCar(t, "Renault Clio", "22222-B-6", models.CarStatusRented)
	factory.CreateCar(t, "Peugeot 208", "33333-C-6", models.CarStatusRented)
	factory.CreateCar(t, "Hyundai i10", "44444-D-6", models.CarStatusReserved)

	stats, err := storage.CountCarsByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Available)
	assert.Equal(t, 2, stats.Rented)
	assert.Equal(t, 1, stats.Reserved)
}

func TestStorage_Expenses(t *testing.T) {
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	july := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	carID := factory.CreateCar(t, "Dacia Logan", "12345-A-6", models.CarStatusAvailable)

	ctx := context.Background()

	expenseID, err := storage.CreateExpense(ctx, models.Expense{
		Category:    "maintenance",
		Amount:      350,
		ExpenseDate: june.AddDate(0, 0, 5),
		CarID:       &carID,
		Description: "oil change",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, expenseID)

	_, err = storage.CreateExpense(ctx, models.Expense{
		Category:    "insurance",
		Amount:      1200,
		ExpenseDate: july.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	got, err := storage.ListExpenses(ctx, june, july)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "maintenance", got[0].Category)
	assert.Equal(t, "Dacia Logan", got[0].CarModel)

	total, err := storage.SumExpenses(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.InDelta(t, 1550.0, total, 0.001)

	rowsAffected, err := storage.UpdateExpense(ctx, expenseID, models.Expense{
		Category:    "maintenance",
		Amount:      400,
		ExpenseDate: june.AddDate(0, 0, 5),
		CarID:       &carID,
		Description: "oil and filter change",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rowsAffected)

	rowsAffected, err = storage.RemoveExpense(ctx, expenseID)
	require.NoError(t, err)
	assert.Equal(t, 1, rowsAffected)
}

func TestStorage_SumRentalRevenue(t *testing.T) {
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	july := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	carID := factory.CreateCar(t, "Dacia Logan", "12345-A-6", models.CarStatusAvailable)
	clientID := factory.CreateClient(t, "Test Client")

	factory.CreateRental(t, carID, clientID,
		june.AddDate(0, 0, 1), june.AddDate(0, 0, 3), 1000, models.RentalStatusReturned)
	factory.CreateRental(t, carID, clientID,
		july.AddDate(0, 0, 1), july.AddDate(0, 0, 3), 2000, models.RentalStatusReturned)

	total, err := storage.SumRentalRevenue(context.Background(), june, july)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, total, 0.001)

	total, err = storage.SumRentalRevenue(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.InDelta(t, 3000.0, total, 0.001)
}

func TestStorage_Documents(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	clientID := factory.CreateClient(t, "Ahmed Benali")
	otherClientID := factory.CreateClient(t, "Fatima Zahra")

	ctx := context.Background()

	docID, err := storage.CreateDocument(ctx, models.Document{
		ClientID: clientID,
		URL:      "https://files.example.com/passports/ahmed.pdf",
		Type:     models.DocumentTypePassport,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, docID)

	_, err = storage.CreateDocument(ctx, models.Document{
		ClientID: otherClientID,
		URL:      "https://files.example.com/licenses/fatima.pdf",
		Type:     models.DocumentTypeLicense,
	})
	require.NoError(t, err)

	// Повторная регистрация того же URL отклоняется, даже для другого клиента.
	_, err = storage.CreateDocument(ctx, models.Document{
		ClientID: otherClientID,
		URL:      "https://files.example.com/passports/ahmed.pdf",
		Type:     models.DocumentTypeOther,
	})
	require.ErrorIs(t, err, ErrDocumentExists)

	got, err := storage.ListDocuments(ctx, "", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = storage.ListDocuments(ctx, "benali", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, docID, got[0].ID)
	assert.Equal(t, "Ahmed Benali", got[0].ClientName)
	assert.Equal(t, models.DocumentTypePassport, got[0].Type)

	got, err = storage.ListDocuments(ctx, "",
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = storage.ListDocuments(ctx, "", time.Now().Add(time.Hour), time.Time{})
	require.NoError(t, err)
	require.Empty(t, got)

	rowsAffected, err := storage.RemoveDocument(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, 1, rowsAffected)

	rowsAffected, err = storage.RemoveDocument(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, 0, rowsAffected)
}

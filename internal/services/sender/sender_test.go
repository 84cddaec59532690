package services

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ayoubkcm/fleet-backoffice/internal/lib/smtp"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func overdueBody(t *testing.T) []byte {
	t.Helper()
	now := time.Date(2025, 7, 1, 11, 0, 0, 0, time.UTC)
	info := models.RentalInfo{
		Rental: models.Rental{
			ID:         uuid.New(),
			StartDate:  now.AddDate(0, 0, -5),
			ReturnDate: now.AddDate(0, 0, -1),
			Status:     models.RentalStatusRented,
		},
		CarModel:        "Dacia Logan",
		PlateNumber:     "12345-A-6",
		ClientName:      "Hassan El Amrani",
		StartDateLocal:  "2025-06-26T12:00",
		ReturnDateLocal: "2025-06-30T12:00",
	}
	body, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal rental info: %v", err)
	}
	return body
}

func TestSenderService_SendOverdueAlert(t *testing.T) {
	tests := []struct {
		name          string
		body          func(t *testing.T) []byte
		setupMocks    func(*MockTransport)
		expectedError bool
		errorMessage  string
	}{
		{
			name: "success - send overdue alert email",
			body: overdueBody,
			setupMocks: func(tr *MockTransport) {
				mockClient := new(MockSMTPClient)
				mockWriter := new(MockSMTPWriter)

				tr.On("GetSMTPUser").Return("fleet@example.com")
				tr.On("Connect").Return(mockClient, nil).Once()
				mockClient.On("Mail", "fleet@example.com").Return(nil).Once()
				mockClient.On("Rcpt", "admin@example.com").Return(nil).Once()
				mockClient.On("Data").Return(mockWriter, nil).Once()
				mockWriter.On("Write", mock.AnythingOfType("[]uint8")).Return(100, nil).Once()
				mockWriter.On("Close").Return(nil).Once()
				mockClient.On("Quit").Return(nil).Once()
				mockClient.On("Close").Return(nil).Once()
			},
		},
		{
			name: "invalid JSON",
			body: func(_ *testing.T) []byte { return []byte(`invalid json`) },
			setupMocks: func(_ *MockTransport) {
			},
			expectedError: true,
			errorMessage:  "error unmarshalling message",
		},
		{
			name: "SMTP connection error",
			body: overdueBody,
			setupMocks: func(tr *MockTransport) {
				tr.On("GetSMTPUser").Return("fleet@example.com")
				tr.On("Connect").Return(nil, errors.New("connection error")).Once()
			},
			expectedError: true,
			errorMessage:  "connection error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			service := NewSenderService(transport, "admin@example.com", newNoopLogger())

			tt.setupMocks(transport)

			err := service.SendOverdueAlert(tt.body(t))

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMessage)
			} else {
				assert.NoError(t, err)
			}

			transport.AssertExpectations(t)
		})
	}
}

func TestSenderService_SMTPErrorHandling(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(*MockTransport)
		errorMessage string
	}{
		{
			name: "SMTP Mail error",
			setupMocks: func(tr *MockTransport) {
				mockClient := new(MockSMTPClient)

				tr.On("GetSMTPUser").Return("fleet@example.com")
				tr.On("Connect").Return(mockClient, nil).Once()
				mockClient.On("Mail", "fleet@example.com").Return(errors.New("mail error")).Once()
				mockClient.On("Close").Return(nil).Once()
			},
			errorMessage: "mail error",
		},
		{
			name: "SMTP Rcpt error",
			setupMocks: func(tr *MockTransport) {
				mockClient := new(MockSMTPClient)

				tr.On("GetSMTPUser").Return("fleet@example.com")
				tr.On("Connect").Return(mockClient, nil).Once()
				mockClient.On("Mail", "fleet@example.com").Return(nil).Once()
				mockClient.On("Rcpt", "admin@example.com").Return(errors.New("rcpt error")).Once()
				mockClient.On("Close").Return(nil).Once()
			},
			errorMessage: "rcpt error",
		},
		{
			name: "SMTP Data error",
			setupMocks: func(tr *MockTransport) {
				mockClient := new(MockSMTPClient)

				tr.On("GetSMTPUser").Return("fleet@example.com")
				tr.On("Connect").Return(mockClient, nil).Once()
				mockClient.On("Mail", "fleet@example.com").Return(nil).Once()
				mockClient.On("Rcpt", "admin@example.com").Return(nil).Once()
				mockClient.On("Data").Return(nil, errors.New("data error")).Once()
				mockClient.On("Close").Return(nil).Once()
			},
			errorMessage: "data error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			service := NewSenderService(transport, "admin@example.com", newNoopLogger())

			tt.setupMocks(transport)

			err := service.SendOverdueAlert(overdueBody(t))

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMessage)

			transport.AssertExpectations(t)
		})
	}
}

func TestSenderService_NewSenderService(t *testing.T) {
	transport := new(MockTransport)
	logger := newNoopLogger()

	service := NewSenderService(transport, "admin@example.com", logger)

	assert.NotNil(t, service)
	assert.Equal(t, transport, service.transport)
	assert.Equal(t, "admin@example.com", service.alertEmail)
	assert.Equal(t, logger, service.log)
}

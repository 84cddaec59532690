// Package services отправляет email-алерты о просроченных возвратах
// из очереди RabbitMQ на адрес администратора автопарка.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ayoubkcm/fleet-backoffice/internal/lib/sl"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/smtp"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// SenderService превращает сообщения очереди алертов в письма.
type SenderService struct {
	transport  smtp.TransportInterface
	alertEmail string
	log        *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, alertEmail string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport:  transport,
		alertEmail: alertEmail,
		log:        log,
	}
}

// SendOverdueAlert разбирает сообщение о просроченном возврате
// и отправляет письмо администратору.
func (s *SenderService) SendOverdueAlert(body []byte) error {
	var info models.RentalInfo
	if err := json.Unmarshal(body, &info); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{s.alertEmail}
	subject := fmt.Sprintf("Просроченный возврат: %s %s", info.CarModel, info.PlateNumber)
	bodyText := fmt.Sprintf(
		"Автомобиль %s (%s) не возвращён вовремя.\n\nКлиент: %s\nНачало проката: %s\nОжидаемый возврат: %s\n\nСвяжитесь с клиентом.",
		info.CarModel, info.PlateNumber, info.ClientName,
		info.StartDateLocal, info.ReturnDateLocal)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}

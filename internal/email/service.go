package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"

	"github.com/clinicore/clinic-api/internal/config"
	"github.com/clinicore/clinic-api/internal/model"
)

// Service sends patient-facing notifications. Delivery is best-effort:
// callers log failures and never fail the request over them.
type Service interface {
	SendAppointmentDecision(ctx context.Context, to, patientName string, status model.AppointmentStatus, date, startTime string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendAppointmentDecision(_ context.Context, to, patientName string, status model.AppointmentStatus, date, startTime string) error {
	var subject, verdict string
	switch status {
	case model.AppointmentStatusAccepted:
		subject = "Your appointment has been confirmed"
		verdict = "confirmed"
	case model.AppointmentStatusRejected:
		subject = "Your appointment could not be confirmed"
		verdict = "declined"
	default:
		return fmt.Errorf("no notification template for status %s", status)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nYour appointment on %s at %s has been %s.\n",
		patientName, date, startTime, verdict,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send appointment notification: %w", err)
	}
	return nil
}

type noopService struct {
	logger zerolog.Logger
}

// NewNoopService is used when SMTP is not configured; it logs instead
// of sending.
func NewNoopService(logger zerolog.Logger) Service {
	return &noopService{logger: logger}
}

func (s *noopService) SendAppointmentDecision(_ context.Context, to, _ string, status model.AppointmentStatus, date, _ string) error {
	s.logger.Debug().
		Str("to", to).
		Str("status", string(status)).
		Str("date", date).
		Msg("smtp not configured, skipping appointment notification")
	return nil
}

// Package service holds the gateway's external collaborator services
// that are not part of the appointments backend contract.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"medlyst-gateway/config"
)

const (
	emailEndpoint    = "https://api.emailjs.com/api/v1.0/email/send"
	emailSendTimeout = 10 * time.Second
)

// AppointmentEmail carries the template parameters for a confirmation
// email.
type AppointmentEmail struct {
	PatientName  string
	PatientEmail string
	DoctorName   string
	Date         string
	Time         string
	Reason       string
}

// Mailer dispatches appointment confirmation emails. Implementations
// are strictly best-effort: callers log failures but never branch on
// them, so a broken mail provider can never block a booking.
type Mailer interface {
	SendAppointmentEmail(ctx context.Context, email AppointmentEmail) error
}

// EmailJSMailer sends through the EmailJS transactional API using a
// fixed service/template pair.
type EmailJSMailer struct {
	cfg        config.EmailConfig
	endpoint   string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewEmailJSMailer creates a mailer from config.
func NewEmailJSMailer(cfg config.EmailConfig, log *logrus.Logger) *EmailJSMailer {
	return &EmailJSMailer{
		cfg:      cfg,
		endpoint: emailEndpoint,
		httpClient: &http.Client{
			Timeout: emailSendTimeout,
		},
		log: log,
	}
}

// SendAppointmentEmail posts the confirmation template. Missing keys
// mean the integration was never set up; that is logged and skipped
// rather than failed so a bare deployment still books fine.
func (m *EmailJSMailer) SendAppointmentEmail(ctx context.Context, email AppointmentEmail) error {
	if m.cfg.ServiceID == "" || m.cfg.TemplateID == "" || m.cfg.PublicKey == "" {
		m.log.Warn("EmailJS keys are missing, confirmation email not sent")
		return nil
	}

	payload := map[string]interface{}{
		"service_id":  m.cfg.ServiceID,
		"template_id": m.cfg.TemplateID,
		"user_id":     m.cfg.PublicKey,
		"template_params": map[string]string{
			"to_email":         email.PatientEmail,
			"to_name":          email.PatientName,
			"doctor_name":      email.DoctorName,
			"appointment_date": email.Date,
			"appointment_time": email.Time,
			"reason":           email.Reason,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mailer: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mailer: provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	m.log.Infof("Confirmation email sent to %s", email.PatientEmail)
	return nil
}

// StubMailer logs instead of sending. Used in tests and when email is
// disabled outright.
type StubMailer struct {
	log *logrus.Logger
}

// NewStubMailer creates a no-op mailer.
func NewStubMailer(log *logrus.Logger) *StubMailer {
	return &StubMailer{log: log}
}

// SendAppointmentEmail logs the would-be email.
func (m *StubMailer) SendAppointmentEmail(ctx context.Context, email AppointmentEmail) error {
	m.log.Infof("Stub mailer: would send confirmation to %s for %s", email.PatientEmail, email.DoctorName)
	return nil
}

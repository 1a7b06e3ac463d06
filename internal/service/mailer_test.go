package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medlyst-gateway/config"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		ServiceID:  "service_abc",
		TemplateID: "template_xyz",
		PublicKey:  "pk_123",
	}
}

func sampleEmail() AppointmentEmail {
	return AppointmentEmail{
		PatientName:  "Jane Doe",
		PatientEmail: "jane@example.com",
		DoctorName:   "Dr. Amy Adams",
		Date:         "2025-01-10",
		Time:         "09:00",
		Reason:       "Recurring chest pain during exercise",
	}
}

func TestSendAppointmentEmail_PayloadShape(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	mailer := NewEmailJSMailer(testEmailConfig(), testLogger())
	mailer.endpoint = server.URL

	require.NoError(t, mailer.SendAppointmentEmail(context.Background(), sampleEmail()))

	assert.Equal(t, "service_abc", got["service_id"])
	assert.Equal(t, "template_xyz", got["template_id"])
	assert.Equal(t, "pk_123", got["user_id"])

	params, ok := got["template_params"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", params["to_email"])
	assert.Equal(t, "Jane Doe", params["to_name"])
	assert.Equal(t, "Dr. Amy Adams", params["doctor_name"])
	assert.Equal(t, "2025-01-10", params["appointment_date"])
	assert.Equal(t, "09:00", params["appointment_time"])
}

func TestSendAppointmentEmail_MissingKeysSkipsSend(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	mailer := NewEmailJSMailer(config.EmailConfig{ServiceID: "service_abc"}, testLogger())
	mailer.endpoint = server.URL

	err := mailer.SendAppointmentEmail(context.Background(), sampleEmail())
	assert.NoError(t, err, "an unset integration is a skip, not a failure")
	assert.Zero(t, requests)
}

func TestSendAppointmentEmail_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The service ID is invalid", http.StatusForbidden)
	}))
	defer server.Close()

	mailer := NewEmailJSMailer(testEmailConfig(), testLogger())
	mailer.endpoint = server.URL

	err := mailer.SendAppointmentEmail(context.Background(), sampleEmail())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "service ID is invalid")
}

func TestStubMailer_AlwaysSucceeds(t *testing.T) {
	mailer := NewStubMailer(testLogger())
	assert.NoError(t, mailer.SendAppointmentEmail(context.Background(), sampleEmail()))
}

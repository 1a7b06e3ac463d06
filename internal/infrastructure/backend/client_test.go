package backend

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

func newTestClient(serverURL string) *Client {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewClient(config.BackendConfig{BaseURL: serverURL}, log)
}

func TestGetDoctors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/doctors", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Dr. Amy Adams","speciality":"Cardiologist"}]`))
	}))
	defer server.Close()

	doctors, err := newTestClient(server.URL).GetDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, int64(1), doctors[0].ID)
	assert.Equal(t, "Cardiologist", doctors[0].Speciality)
}

func TestGetSlots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/slots", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":10,"doctor_id":1,"start_time":"2025-01-10T09:00:00Z"}]`))
	}))
	defer server.Close()

	slots, err := newTestClient(server.URL).GetSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, int64(10), slots[0].ID)
	assert.Equal(t, "2025-01-10T09:00:00Z", slots[0].StartTime)
}

func TestCreateBooking_RequestBody(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"slot_id":42,"user_name":"Jane Doe","user_phone":"+1 555 010 2030"}`))
	}))
	defer server.Close()

	booking, err := newTestClient(server.URL).CreateBooking(context.Background(), 42, "Jane Doe", "+1 555 010 2030")
	require.NoError(t, err)
	assert.Equal(t, int64(7), booking.ID)
	assert.Equal(t, int64(42), booking.SlotID)

	assert.Equal(t, float64(42), got["slot_id"])
	assert.Equal(t, "Jane Doe", got["user_name"])
	assert.Equal(t, "+1 555 010 2030", got["user_phone"])
}

func TestDo_NonSuccessCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"slot already booked"}`, http.StatusConflict)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CreateBooking(context.Background(), 42, "Jane Doe", "+1 555 010 2030")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "slot already booked")
}

func TestDeleteDoctor_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/admin/doctors/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	assert.NoError(t, newTestClient(server.URL).DeleteDoctor(context.Background(), 3))
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/doctors", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL + "/").GetDoctors(context.Background())
	assert.NoError(t, err)
}

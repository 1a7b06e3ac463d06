// Package backend is the HTTP client for the appointments backend, an
// external REST collaborator this gateway has no schema knowledge of.
package backend

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

const defaultTimeout = 15 * time.Second

// Client talks JSON over HTTP to the appointments backend. Non-2xx
// responses are normalized to a single error carrying whatever payload
// the backend returned; no structured error taxonomy is assumed.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient creates a backend client from config.
func NewClient(cfg config.BackendConfig, log *logrus.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDoctors fetches all doctor records.
func (c *Client) GetDoctors(ctx context.Context) ([]RawDoctor, error) {
	var doctors []RawDoctor
	if err := c.do(ctx, http.MethodGet, "/doctors", nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// GetSlots fetches all slot records.
func (c *Client) GetSlots(ctx context.Context) ([]RawSlot, error) {
	var slots []RawSlot
	if err := c.do(ctx, http.MethodGet, "/slots", nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// CreateBooking books a slot for a patient.
func (c *Client) CreateBooking(ctx context.Context, slotID int64, userName, userPhone string) (*RawBooking, error) {
	body := map[string]interface{}{
		"slot_id":    slotID,
		"user_name":  userName,
		"user_phone": userPhone,
	}
	var booking RawBooking
	if err := c.do(ctx, http.MethodPost, "/bookings", body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CreateDoctor creates a doctor record through the admin API.
func (c *Client) CreateDoctor(ctx context.Context, payload CreateDoctorPayload) (*RawDoctor, error) {
	var doctor RawDoctor
	if err := c.do(ctx, http.MethodPost, "/admin/doctors", payload, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// DeleteDoctor removes a doctor record through the admin API.
func (c *Client) DeleteDoctor(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/doctors/%d", id), nil, nil)
}

// CreateSlot creates a slot record through the admin API.
func (c *Client) CreateSlot(ctx context.Context, payload CreateSlotPayload) (*RawSlot, error) {
	var slot RawSlot
	if err := c.do(ctx, http.MethodPost, "/admin/slots", payload, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warnf("Backend %s %s returned %d: %s", method, path, resp.StatusCode, string(data))
		return fmt.Errorf("backend: %s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}

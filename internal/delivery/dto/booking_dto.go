package dto

import "time"

// Request DTOs

type OpenSessionRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
}

type SetDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type SetTimeRequest struct {
	Time   string `json:"time" validate:"required,datetime=15:04"`
	SlotID string `json:"slot_id" validate:"omitempty"`
}

// SubmitBookingRequest is the wizard's patient-details form. Limits
// mirror the booking form the patients fill in.
type SubmitBookingRequest struct {
	PatientName string `json:"patient_name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Phone       string `json:"phone" validate:"required,min=10,max=20"`
	Reason      string `json:"reason" validate:"required,min=10,max=500"`
}

// Response DTOs

type BookingSessionResponse struct {
	ID        string            `json:"id"`
	Step      string            `json:"step"`
	State     string            `json:"state"`
	Doctor    *DoctorResponse   `json:"doctor,omitempty"`
	Date      string            `json:"date,omitempty"`
	Time      *SlotTimeResponse `json:"time,omitempty"`
	ModalOpen bool              `json:"modal_open"`
}

type BookingResponse struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name"`
	Specialty   string    `json:"specialty"`
	PatientName string    `json:"patient_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Reason      string    `json:"reason"`
	SlotID      string    `json:"slot_id,omitempty"`
	Persisted   bool      `json:"persisted"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

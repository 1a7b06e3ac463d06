package entity

import "time"

// Booking is a confirmed appointment kept in the local booking history.
// A booking is created exactly once per successful wizard submission and
// is never updated afterwards; cancellation removes it from history.
type Booking struct {
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
	CreatedAt   time.Time `json:"created_at"`
}

// Persisted reports whether this booking was committed to the
// appointments backend rather than a placeholder slot.
func (b *Booking) Persisted() bool {
	return !(SlotTime{SlotID: b.SlotID}).IsPlaceholder()
}

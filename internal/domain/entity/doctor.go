package entity

import "strings"

// PlaceholderIDPrefix marks identifiers that exist only client-side.
// Slots and doctors carrying this prefix are display-only and are never
// persisted through the appointments backend.
const PlaceholderIDPrefix = "mock_"

// Fallback defaults applied when the backend omits a field.
const (
	DefaultSpecialty = "General"
	DefaultHospital  = "Medlyst Clinic"
	DefaultBio       = "Verified Specialist"
	DefaultPhotoURL  = "https://images.unsplash.com/photo-1622253692010-333f2da6031d?w=400&h=400&fit=crop&crop=face"
)

// Doctor is the directory's view of a doctor, including aggregated
// availability. Instances are rebuilt wholesale on every directory
// refresh and never mutated in place.
type Doctor struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Specialty      string          `json:"specialty"`
	Rating         float64         `json:"rating"`
	ReviewCount    int             `json:"review_count"`
	Hospital       string          `json:"hospital"`
	Bio            string          `json:"bio"`
	PhotoURL       string          `json:"photo_url"`
	Tags           []string        `json:"tags"`
	Experience     int             `json:"experience"`
	AvailableSlots []AvailableSlot `json:"available_slots"`
}

// AvailableSlot is one calendar day of availability. Times are unique
// per time-of-day string and sorted ascending.
type AvailableSlot struct {
	Date  string     `json:"date"`
	Times []SlotTime `json:"times"`
}

// SlotTime is a single bookable time of day (HH:MM, 24-hour). SlotID is
// empty or placeholder-prefixed for slots that have no backing backend
// record.
type SlotTime struct {
	Time   string `json:"time"`
	SlotID string `json:"slot_id,omitempty"`
}

// IsPlaceholder reports whether this slot cannot be persisted by a
// booking.
func (t SlotTime) IsPlaceholder() bool {
	return t.SlotID == "" || strings.HasPrefix(t.SlotID, PlaceholderIDPrefix)
}

// SlotOnDate returns the availability entry for the given date, if any.
func (d *Doctor) SlotOnDate(date string) (AvailableSlot, bool) {
	for _, slot := range d.AvailableSlots {
		if slot.Date == date {
			return slot, true
		}
	}
	return AvailableSlot{}, false
}

// HasTime reports whether the doctor offers the given time on the given
// date.
func (d *Doctor) HasTime(date, timeOfDay string) bool {
	slot, ok := d.SlotOnDate(date)
	if !ok {
		return false
	}
	for _, t := range slot.Times {
		if t.Time == timeOfDay {
			return true
		}
	}
	return false
}

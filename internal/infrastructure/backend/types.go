package backend

// RawDoctor is a doctor record exactly as the appointments backend
// returns it. Field naming is not fully consistent upstream: some
// deployments send "speciality", others "specialty", and most optional
// fields may be absent entirely. Defaulting happens in the converter,
// not here.
type RawDoctor struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Speciality  string   `json:"speciality,omitempty"`
	Specialty   string   `json:"specialty,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	ReviewCount int      `json:"review_count,omitempty"`
	Hospital    string   `json:"hospital,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	PhotoURL    string   `json:"photo_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Experience  int      `json:"experience,omitempty"`
}

// RawSlot is a bookable slot record from GET /slots.
type RawSlot struct {
	ID          int64  `json:"id"`
	DoctorID    int64  `json:"doctor_id"`
	StartTime   string `json:"start_time"`
	DurationMin int    `json:"duration_min"`
	IsBooked    bool   `json:"is_booked"`
}

// RawBooking is the record returned by POST /bookings.
type RawBooking struct {
	ID        int64  `json:"id"`
	SlotID    int64  `json:"slot_id"`
	UserName  string `json:"user_name"`
	UserPhone string `json:"user_phone"`
}

// CreateDoctorPayload is the admin doctor-creation request body.
type CreateDoctorPayload struct {
	Name       string   `json:"name"`
	Speciality string   `json:"speciality,omitempty"`
	Hospital   string   `json:"hospital,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	PhotoURL   string   `json:"photo_url,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Experience int      `json:"experience,omitempty"`
}

// CreateSlotPayload is the admin slot-creation request body. StartTime
// must be ISO 8601.
type CreateSlotPayload struct {
	DoctorID      int64  `json:"doctor_id"`
	StartTime     string `json:"start_time"`
	DurationMin   int    `json:"duration_min"`
	TotalCapacity int    `json:"total_capacity"`
}

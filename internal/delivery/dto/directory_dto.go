package dto

// Response DTOs

type SlotTimeResponse struct {
	Time   string `json:"time"`
	SlotID string `json:"slot_id,omitempty"`
}

type AvailableSlotResponse struct {
	Date  string             `json:"date"`
	Times []SlotTimeResponse `json:"times"`
}

type DoctorResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Specialty      string                  `json:"specialty"`
	Rating         float64                 `json:"rating"`
	ReviewCount    int                     `json:"review_count"`
	Hospital       string                  `json:"hospital"`
	Bio            string                  `json:"bio"`
	PhotoURL       string                  `json:"photo_url"`
	Tags           []string                `json:"tags"`
	Experience     int                     `json:"experience"`
	AvailableSlots []AvailableSlotResponse `json:"available_slots"`
}

type DoctorListResponse struct {
	Doctors  []DoctorResponse `json:"doctors"`
	Total    int              `json:"total"`
	Degraded bool             `json:"degraded"`
}

package dto

// Request DTOs

type CreateDoctorRequest struct {
	Name       string   `json:"name" validate:"required,min=2,max=100"`
	Speciality string   `json:"speciality" validate:"omitempty,max=100"`
	Hospital   string   `json:"hospital" validate:"omitempty,max=255"`
	Bio        string   `json:"bio" validate:"omitempty,max=2000"`
	PhotoURL   string   `json:"photo_url" validate:"omitempty,url"`
	Tags       []string `json:"tags" validate:"omitempty,dive,min=1"`
	Experience int      `json:"experience" validate:"omitempty,gte=0,lte=80"`
}

type CreateSlotRequest struct {
	DoctorID      int64  `json:"doctor_id" validate:"required,min=1"`
	StartTime     string `json:"start_time" validate:"required"`
	DurationMin   int    `json:"duration_min" validate:"required,min=5,max=480"`
	TotalCapacity int    `json:"total_capacity" validate:"omitempty,min=1"`
}

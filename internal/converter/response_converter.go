package converter

import (
	"medlyst-gateway/internal/delivery/dto"
	"medlyst-gateway/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to its response DTO.
func DoctorToResponse(doc *entity.Doctor) *dto.DoctorResponse {
	if doc == nil {
		return nil
	}

	slots := make([]dto.AvailableSlotResponse, len(doc.AvailableSlots))
	for i, slot := range doc.AvailableSlots {
		times := make([]dto.SlotTimeResponse, len(slot.Times))
		for j, t := range slot.Times {
			times[j] = dto.SlotTimeResponse{Time: t.Time, SlotID: t.SlotID}
		}
		slots[i] = dto.AvailableSlotResponse{Date: slot.Date, Times: times}
	}

	return &dto.DoctorResponse{
		ID:             doc.ID,
		Name:           doc.Name,
		Specialty:      doc.Specialty,
		Rating:         doc.Rating,
		ReviewCount:    doc.ReviewCount,
		Hospital:       doc.Hospital,
		Bio:            doc.Bio,
		PhotoURL:       doc.PhotoURL,
		Tags:           doc.Tags,
		Experience:     doc.Experience,
		AvailableSlots: slots,
	}
}

// DoctorsToResponses converts a slice of Doctor entities.
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// SelectionToSessionResponse renders a wizard session's selection.
func SelectionToSessionResponse(id, step string, sel entity.BookingSelection) *dto.BookingSessionResponse {
	resp := &dto.BookingSessionResponse{
		ID:        id,
		Step:      step,
		State:     string(sel.State()),
		Doctor:    DoctorToResponse(sel.Doctor),
		Date:      sel.Date,
		ModalOpen: sel.ModalOpen,
	}
	if sel.Time != nil {
		resp.Time = &dto.SlotTimeResponse{Time: sel.Time.Time, SlotID: sel.Time.SlotID}
	}
	return resp
}

// BookingToResponse converts a history Booking entity.
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}
	return &dto.BookingResponse{
		ID:          booking.ID,
		DoctorID:    booking.DoctorID,
		DoctorName:  booking.DoctorName,
		Specialty:   booking.Specialty,
		PatientName: booking.PatientName,
		Email:       booking.Email,
		Phone:       booking.Phone,
		Date:        booking.Date,
		Time:        booking.Time,
		Reason:      booking.Reason,
		SlotID:      booking.SlotID,
		Persisted:   booking.Persisted(),
		CreatedAt:   booking.CreatedAt,
	}
}

// BookingsToResponses converts a slice of history bookings.
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}

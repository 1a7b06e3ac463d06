package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"medlyst-gateway/internal/delivery/dto"
	"medlyst-gateway/internal/usecase"
	"medlyst-gateway/pkg/response"
	"medlyst-gateway/pkg/validator"
)

type BookingSessionHandler struct {
	sessionUsecase usecase.BookingSessionUsecase
	validator      *validator.CustomValidator
}

func NewBookingSessionHandler(sessionUsecase usecase.BookingSessionUsecase, validator *validator.CustomValidator) *BookingSessionHandler {
	return &BookingSessionHandler{
		sessionUsecase: sessionUsecase,
		validator:      validator,
	}
}

func (h *BookingSessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.Open(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to open booking session")
		return
	}

	response.Success(w, http.StatusCreated, "Booking session opened", session)
}

func (h *BookingSessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := h.sessionUsecase.Get(r.Context(), sessionID)
	if err != nil {
		if err == usecase.ErrSessionNotFound {
			response.NotFound(w, "Booking session not found")
			return
		}
		response.InternalServerError(w, "Failed to get booking session")
		return
	}

	response.Success(w, http.StatusOK, "Booking session retrieved", session)
}

func (h *BookingSessionHandler) SetDate(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req dto.SetDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.SetDate(r.Context(), sessionID, &req)
	if err != nil {
		if err == usecase.ErrSessionNotFound {
			response.NotFound(w, "Booking session not found")
			return
		}
		response.InternalServerError(w, "Failed to set date")
		return
	}

	response.Success(w, http.StatusOK, "Date selected", session)
}

func (h *BookingSessionHandler) SetTime(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req dto.SetTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.SetTime(r.Context(), sessionID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Booking session not found")
		case usecase.ErrNoDateSelected:
			response.Error(w, http.StatusConflict, "Select a date before a time", nil)
		case usecase.ErrSlotUnavailable:
			response.Error(w, http.StatusConflict, "That time is not available", nil)
		default:
			response.InternalServerError(w, "Failed to set time")
		}
		return
	}

	response.Success(w, http.StatusOK, "Time selected", session)
}

func (h *BookingSessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := h.sessionUsecase.Advance(r.Context(), sessionID)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Booking session not found")
		case usecase.ErrWrongStep:
			response.Error(w, http.StatusConflict, "Wizard is not on the date selection step", nil)
		case usecase.ErrNotReady:
			response.Error(w, http.StatusConflict, "Select a date and time first", nil)
		default:
			response.InternalServerError(w, "Failed to advance wizard")
		}
		return
	}

	response.Success(w, http.StatusOK, "Wizard advanced", session)
}

func (h *BookingSessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req dto.SubmitBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.sessionUsecase.Submit(r.Context(), sessionID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Booking session not found")
		case usecase.ErrWrongStep:
			response.Error(w, http.StatusConflict, "Wizard is not on the form step", nil)
		case usecase.ErrNotReady:
			response.Error(w, http.StatusConflict, "Select a date and time first", nil)
		case usecase.ErrBookingFailed:
			response.BadGateway(w, "Booking failed, please try again")
		default:
			response.InternalServerError(w, "Failed to submit booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked", booking)
}

func (h *BookingSessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := h.sessionUsecase.Close(r.Context(), sessionID); err != nil {
		if err == usecase.ErrSessionNotFound {
			response.NotFound(w, "Booking session not found")
			return
		}
		response.InternalServerError(w, "Failed to close booking session")
		return
	}

	response.Success(w, http.StatusOK, "Booking session closed", nil)
}

func (h *BookingSessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := h.sessionUsecase.Reset(r.Context(), sessionID)
	if err != nil {
		if err == usecase.ErrSessionNotFound {
			response.NotFound(w, "Booking session not found")
			return
		}
		response.InternalServerError(w, "Failed to reset booking session")
		return
	}

	response.Success(w, http.StatusOK, "Booking session reset", session)
}

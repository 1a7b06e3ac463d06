package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"medlyst-gateway/internal/usecase"
	"medlyst-gateway/pkg/response"
)

type BookingHistoryHandler struct {
	historyUsecase usecase.BookingHistoryUsecase
}

func NewBookingHistoryHandler(historyUsecase usecase.BookingHistoryUsecase) *BookingHistoryHandler {
	return &BookingHistoryHandler{
		historyUsecase: historyUsecase,
	}
}

func (h *BookingHistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.historyUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	booking, err := h.historyUsecase.Get(r.Context(), id)
	if err != nil {
		if err == usecase.ErrBookingNotFound {
			response.NotFound(w, "Booking not found")
			return
		}
		response.InternalServerError(w, "Failed to get booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHistoryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.historyUsecase.Cancel(r.Context(), id); err != nil {
		if err == usecase.ErrBookingNotFound {
			response.NotFound(w, "Booking not found")
			return
		}
		response.InternalServerError(w, "Failed to cancel booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", nil)
}

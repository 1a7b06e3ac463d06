package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"medlyst-gateway/internal/delivery/dto"
	"medlyst-gateway/internal/usecase"
	"medlyst-gateway/pkg/response"
	"medlyst-gateway/pkg/validator"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

func (h *AdminHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.adminUsecase.CreateDoctor(r.Context(), &req)
	if err != nil {
		response.BadGateway(w, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *AdminHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if err := h.adminUsecase.DeleteDoctor(r.Context(), id); err != nil {
		response.BadGateway(w, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func (h *AdminHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.adminUsecase.CreateSlot(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrInvalidStartTime {
			response.Error(w, http.StatusBadRequest, "Invalid start time, use ISO 8601", nil)
			return
		}
		response.BadGateway(w, "Failed to create slot")
		return
	}

	response.Success(w, http.StatusCreated, "Slot created successfully", slot)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"medlyst-gateway/internal/converter"
	"medlyst-gateway/internal/delivery/dto"
	"medlyst-gateway/internal/domain/entity"
	"medlyst-gateway/internal/usecase"
	"medlyst-gateway/pkg/response"
)

type DirectoryHandler struct {
	directoryUsecase usecase.DirectoryUsecase
}

func NewDirectoryHandler(directoryUsecase usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUsecase: directoryUsecase,
	}
}

// ListDoctors returns the directory filtered by the q / specialty /
// min_rating query parameters.
func (h *DirectoryHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	specialty := r.URL.Query().Get("specialty")

	var minRating float64
	if raw := r.URL.Query().Get("min_rating"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid min_rating", nil)
			return
		}
		minRating = parsed
	}

	snapshot, err := h.directoryUsecase.Snapshot(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load directory")
		return
	}

	doctors := usecase.Filter(snapshot.Doctors, query, specialty, minRating)
	response.Success(w, http.StatusOK, "Doctors retrieved successfully", &dto.DoctorListResponse{
		Doctors:  converter.DoctorsToResponses(doctors),
		Total:    len(doctors),
		Degraded: snapshot.Degraded,
	})
}

// ListSpecialties returns the filter dropdown options.
func (h *DirectoryHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Specialties retrieved successfully", entity.Specialties)
}

// GetDoctor returns one doctor with aggregated availability.
func (h *DirectoryHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	doctor, err := h.directoryUsecase.GetDoctor(r.Context(), vars["id"])
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", converter.DoctorToResponse(doctor))
}

// RefreshDirectory forces a re-aggregation from the backend.
func (h *DirectoryHandler) RefreshDirectory(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.directoryUsecase.Refresh(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to refresh directory")
		return
	}

	response.Success(w, http.StatusOK, "Directory refreshed successfully", &dto.DoctorListResponse{
		Doctors:  converter.DoctorsToResponses(snapshot.Doctors),
		Total:    len(snapshot.Doctors),
		Degraded: snapshot.Degraded,
	})
}

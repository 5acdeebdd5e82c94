package doctors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/healthnet-hms/clinic-service/internal/auth"
	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type DoctorSuccessResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Doctor  *Doctor `json:"doctor,omitempty"`
}

func (h *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req DoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	doctor, err := h.service.CreateDoctor(r.Context(), principal.Username, req)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(DoctorSuccessResponse{
		Success: true,
		Message: "Doctor created successfully",
		Doctor:  doctor,
	})
}

func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)

	response, err := h.service.ListDoctors(r.Context(), params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Doctor ID is required")
		return
	}

	doctor, err := h.service.GetDoctor(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DoctorSuccessResponse{
		Success: true,
		Message: "Doctor retrieved successfully",
		Doctor:  doctor,
	})
}

func (h *Handler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Doctor ID is required")
		return
	}

	var req DoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	doctor, err := h.service.UpdateDoctor(r.Context(), principal.Username, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDoctorNotFound):
			respondError(w, http.StatusNotFound, "not_found", err.Error())
		case isValidationError(err):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DoctorSuccessResponse{
		Success: true,
		Message: "Doctor updated successfully",
		Doctor:  doctor,
	})
}

func (h *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Doctor ID is required")
		return
	}

	if err := h.service.DeleteDoctor(r.Context(), principal.Username, id); err != nil {
		switch {
		case errors.Is(err, ErrDoctorNotFound):
			respondError(w, http.StatusNotFound, "not_found", err.Error())
		case errors.Is(err, ErrDoctorReferenced):
			respondError(w, http.StatusConflict, "record_referenced", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "deletion_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Doctor deleted successfully",
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingFirstName) ||
		errors.Is(err, ErrMissingLastName) ||
		errors.Is(err, ErrMissingSpecialization) ||
		errors.Is(err, ErrMissingPhone) ||
		errors.Is(err, ErrMissingEmail)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}

package staff

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

type StaffSuccessResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Staff   *StaffMember `json:"staff,omitempty"`
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req StaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	member, err := h.service.CreateStaff(r.Context(), principal.Username, req)
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
	json.NewEncoder(w).Encode(StaffSuccessResponse{
		Success: true,
		Message: "Staff member created successfully",
		Staff:   member,
	})
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)

	response, err := h.service.ListStaff(r.Context(), params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Staff ID is required")
		return
	}

	member, err := h.service.GetStaff(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StaffSuccessResponse{
		Success: true,
		Message: "Staff member retrieved successfully",
		Staff:   member,
	})
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Staff ID is required")
		return
	}

	var req StaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	member, err := h.service.UpdateStaff(r.Context(), principal.Username, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrStaffNotFound):
			respondError(w, http.StatusNotFound, "not_found", err.Error())
		case isValidationError(err):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StaffSuccessResponse{
		Success: true,
		Message: "Staff member updated successfully",
		Staff:   member,
	})
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Staff ID is required")
		return
	}

	if err := h.service.DeleteStaff(r.Context(), principal.Username, id); err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "deletion_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Staff member deleted successfully",
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingFirstName) ||
		errors.Is(err, ErrMissingLastName) ||
		errors.Is(err, ErrMissingRole) ||
		errors.Is(err, ErrInvalidHireDate) ||
		errors.Is(err, ErrNegativeSalary)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}

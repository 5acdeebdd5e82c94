package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/healthnet-hms/clinic-service/internal/auth"
	"github.com/healthnet-hms/clinic-service/internal/identity"
	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type AppointmentSuccessResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	Appointment *Appointment `json:"appointment,omitempty"`
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	appointment, err := h.service.CreateAppointment(r.Context(), principal.Username, req)
	if err != nil {
		switch {
		case isValidationError(err):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment created successfully",
		Appointment: appointment,
	})
}

// ListAppointments serves the schedule. Patient accounts only ever see their
// own appointments regardless of the query filters they send.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	params := pagination.ParseParams(r)
	patientID := r.URL.Query().Get("patient_id")
	doctorID := r.URL.Query().Get("doctor_id")

	if principal.Role == identity.RolePatient {
		if principal.LinkedID == "" {
			respondError(w, http.StatusForbidden, "no_linked_record", "Account is not linked to a patient record")
			return
		}
		patientID = principal.LinkedID
	}

	response, err := h.service.ListAppointments(r.Context(), params, patientID, doctorID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	appointment, err := h.service.GetAppointment(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	if principal.Role == identity.RolePatient && appointment.PatientID != principal.LinkedID {
		respondError(w, http.StatusForbidden, "forbidden", "Appointment belongs to another patient")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment retrieved successfully",
		Appointment: appointment,
	})
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	appointment, err := h.service.UpdateAppointment(r.Context(), principal.Username, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			respondError(w, http.StatusNotFound, "not_found", err.Error())
		case isValidationError(err):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment updated successfully",
		Appointment: appointment,
	})
}

func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	appointment, err := h.service.TransitionStatus(r.Context(), principal.Username, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			respondError(w, http.StatusNotFound, "not_found", err.Error())
		case errors.Is(err, ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, ErrInvalidTransition):
			respondError(w, http.StatusUnprocessableEntity, "invalid_transition", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment status updated successfully",
		Appointment: appointment,
	})
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	if err := h.service.DeleteAppointment(r.Context(), principal.Username, id); err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "deletion_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Appointment deleted successfully",
	})
}

// isValidationError covers the field checks plus unresolvable patient and
// doctor references; a booking that names a missing record is invalid input,
// not a missing resource.
func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingPatient) ||
		errors.Is(err, ErrMissingDoctor) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrPatientNotFound) ||
		errors.Is(err, ErrDoctorNotFound)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}

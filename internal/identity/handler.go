package identity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/healthnet-hms/clinic-service/internal/auth"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Session *Session `json:"session,omitempty"`
}

type SessionResponse struct {
	Success  bool   `json:"success"`
	User     *User  `json:"user"`
	LinkedID string `json:"linked_id,omitempty"`
	Landing  string `json:"landing"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	user, err := h.service.CreateAccount(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUsername):
			respondError(w, http.StatusConflict, "duplicate_username", err.Error())
		case errors.Is(err, ErrLinkedRecordNotFound):
			respondError(w, http.StatusNotFound, "not_found", err.Error())
		case errors.Is(err, ErrUsernameTooShort),
			errors.Is(err, ErrPasswordTooShort),
			errors.Is(err, ErrPasswordMismatch),
			errors.Is(err, ErrMissingFullName),
			errors.Is(err, ErrInvalidRole),
			errors.Is(err, ErrMissingLinkedRecord):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SignupResponse{
		Success: true,
		Message: "Account created successfully",
		User:    user,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	session, err := h.service.Authenticate(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "login_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{
		Success: true,
		Message: "Login successful",
		Session: session,
	})
}

// Logout always succeeds: sessions are stateless bearer tokens that the
// client discards. The endpoint exists so views have an unconditional
// Authenticated -> Unauthenticated transition to call.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	user, err := h.service.CurrentUser(r.Context(), principal)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SessionResponse{
		Success:  true,
		User:     user,
		LinkedID: principal.LinkedID,
		Landing:  LandingForRole(user.Role),
	})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}

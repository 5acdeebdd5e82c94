package appointments

import (
	"errors"
	"time"

	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

var (
	ErrMissingPatient      = errors.New("patient_id is required")
	ErrMissingDoctor       = errors.New("doctor_id is required")
	ErrInvalidDate         = errors.New("appointment date must be in YYYY-MM-DD format")
	ErrInvalidTime         = errors.New("appointment time must be in HH:MM format")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrInvalidTransition   = errors.New("appointment status transition not allowed")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("referenced patient does not exist")
	ErrDoctorNotFound      = errors.New("referenced doctor does not exist")
)

// Appointment statuses
const (
	StatusScheduled = "Scheduled"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusConfirmed: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// Allowed status transitions. Completed and Cancelled are terminal.
var transitions = map[string][]string{
	StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether an appointment may move from one status to
// another. Setting the current status again is treated as a no-op and allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AppointmentRequest carries the writable appointment fields. Status is not
// writable here; it starts as Scheduled and only moves through the status
// endpoint.
type AppointmentRequest struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"` // Format: YYYY-MM-DD
	Time      string `json:"time"` // Format: HH:MM, 24-hour
	Notes     string `json:"notes,omitempty"`
}

// Validate checks the required fields and field formats. Date and time are
// normalized to their padded forms ("2026-09-05", "09:05"); the time column
// sorts lexicographically, so an unpadded hour would break schedule order.
func (r *AppointmentRequest) Validate() error {
	if r.PatientID == "" {
		return ErrMissingPatient
	}
	if r.DoctorID == "" {
		return ErrMissingDoctor
	}
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return ErrInvalidDate
	}
	r.Date = date.Format("2006-01-02")

	at, err := time.Parse("15:04", r.Time)
	if err != nil {
		return ErrInvalidTime
	}
	r.Time = at.Format("15:04")

	return nil
}

// StatusRequest is the body of the status transition endpoint.
type StatusRequest struct {
	Status string `json:"status"`
}

// Appointment represents the appointment data returned to clients. Patient
// and doctor names are joined in so list views need no extra lookups.
type Appointment struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patient_id"`
	PatientName string     `json:"patient_name"`
	DoctorID    string     `json:"doctor_id"`
	DoctorName  string     `json:"doctor_name"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Filter narrows appointment listings.
type Filter struct {
	Search    string
	PatientID string
	DoctorID  string
}

// PaginatedAppointmentList represents a paginated list of appointments
type PaginatedAppointmentList struct {
	Appointments []Appointment   `json:"appointments"`
	Pagination   pagination.Meta `json:"pagination"`
}

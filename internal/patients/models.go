package patients

import (
	"errors"
	"time"

	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

var (
	ErrMissingFirstName   = errors.New("first name is required")
	ErrMissingLastName    = errors.New("last name is required")
	ErrInvalidDateOfBirth = errors.New("date of birth must be in YYYY-MM-DD format")
	ErrInvalidGender      = errors.New("invalid gender")
	ErrPatientNotFound    = errors.New("patient not found")
	ErrPatientReferenced  = errors.New("patient has appointments and cannot be deleted")
)

var validGenders = map[string]bool{
	"":       true,
	"Male":   true,
	"Female": true,
	"Other":  true,
}

// PatientRequest carries the full set of writable patient fields. Updates are
// a full replace of these fields; age is always derived from date_of_birth at
// write time and never accepted from the client.
type PatientRequest struct {
	PatientID        string `json:"patient_id,omitempty"` // external code, generated when absent
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	DateOfBirth      string `json:"date_of_birth,omitempty"` // Format: YYYY-MM-DD
	Gender           string `json:"gender,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email,omitempty"`
	Address          string `json:"address,omitempty"`
	MedicalHistory   string `json:"medical_history,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
	EmergencyPhone   string `json:"emergency_phone,omitempty"`
}

// Validate checks the required fields and field formats.
func (r *PatientRequest) Validate() error {
	if r.FirstName == "" {
		return ErrMissingFirstName
	}
	if r.LastName == "" {
		return ErrMissingLastName
	}
	if r.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", r.DateOfBirth); err != nil {
			return ErrInvalidDateOfBirth
		}
	}
	if !validGenders[r.Gender] {
		return ErrInvalidGender
	}
	return nil
}

// Patient represents the patient data returned to clients
type Patient struct {
	ID               string     `json:"id"`
	UserID           *string    `json:"user_id,omitempty"`
	PatientID        string     `json:"patient_id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	DateOfBirth      *string    `json:"date_of_birth,omitempty"`
	Age              *int       `json:"age,omitempty"`
	Gender           string     `json:"gender,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Email            string     `json:"email,omitempty"`
	Address          string     `json:"address,omitempty"`
	MedicalHistory   string     `json:"medical_history,omitempty"`
	EmergencyContact string     `json:"emergency_contact,omitempty"`
	EmergencyPhone   string     `json:"emergency_phone,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// PaginatedPatientList represents a paginated list of patients
type PaginatedPatientList struct {
	Patients   []Patient       `json:"patients"`
	Pagination pagination.Meta `json:"pagination"`
}

// ComputeAge derives a whole-year age from a date of birth, decremented by
// one when the reference date's month/day precedes the birth month/day.
func ComputeAge(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

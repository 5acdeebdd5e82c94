package doctors

import (
	"errors"
	"time"

	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

var (
	ErrMissingFirstName      = errors.New("first name is required")
	ErrMissingLastName       = errors.New("last name is required")
	ErrMissingSpecialization = errors.New("specialization is required")
	ErrMissingPhone          = errors.New("phone is required")
	ErrMissingEmail          = errors.New("email is required")
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrDoctorReferenced      = errors.New("doctor has appointments and cannot be deleted")
)

// DoctorRequest carries the full set of writable doctor fields. Updates are a
// full replace of these fields.
type DoctorRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Schedule       string `json:"schedule,omitempty"` // free-form availability text
}

// Validate checks the required fields.
func (r *DoctorRequest) Validate() error {
	if r.FirstName == "" {
		return ErrMissingFirstName
	}
	if r.LastName == "" {
		return ErrMissingLastName
	}
	if r.Specialization == "" {
		return ErrMissingSpecialization
	}
	if r.Phone == "" {
		return ErrMissingPhone
	}
	if r.Email == "" {
		return ErrMissingEmail
	}
	return nil
}

// Doctor represents the doctor data returned to clients
type Doctor struct {
	ID             string     `json:"id"`
	UserID         *string    `json:"user_id,omitempty"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Specialization string     `json:"specialization"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	Schedule       string     `json:"schedule,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// PaginatedDoctorList represents a paginated list of doctors
type PaginatedDoctorList struct {
	Doctors    []Doctor        `json:"doctors"`
	Pagination pagination.Meta `json:"pagination"`
}

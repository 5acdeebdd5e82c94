package staff

import (
	"errors"
	"time"

	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

var (
	ErrMissingFirstName = errors.New("first name is required")
	ErrMissingLastName  = errors.New("last name is required")
	ErrMissingRole      = errors.New("role is required")
	ErrInvalidHireDate  = errors.New("hire date must be in YYYY-MM-DD format")
	ErrNegativeSalary   = errors.New("salary cannot be negative")
	ErrStaffNotFound    = errors.New("staff member not found")
)

// StaffRequest carries the full set of writable staff fields. Updates are a
// full replace of these fields.
type StaffRequest struct {
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Role       string   `json:"role"` // job title, e.g. Nurse, Receptionist
	Department string   `json:"department,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Email      string   `json:"email,omitempty"`
	HireDate   string   `json:"hire_date,omitempty"` // Format: YYYY-MM-DD
	Salary     *float64 `json:"salary,omitempty"`
}

// Validate checks the required fields and field formats.
func (r *StaffRequest) Validate() error {
	if r.FirstName == "" {
		return ErrMissingFirstName
	}
	if r.LastName == "" {
		return ErrMissingLastName
	}
	if r.Role == "" {
		return ErrMissingRole
	}
	if r.HireDate != "" {
		if _, err := time.Parse("2006-01-02", r.HireDate); err != nil {
			return ErrInvalidHireDate
		}
	}
	if r.Salary != nil && *r.Salary < 0 {
		return ErrNegativeSalary
	}
	return nil
}

// StaffMember represents the staff data returned to clients
type StaffMember struct {
	ID         string     `json:"id"`
	UserID     *string    `json:"user_id,omitempty"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Role       string     `json:"role"`
	Department string     `json:"department,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Email      string     `json:"email,omitempty"`
	HireDate   *string    `json:"hire_date,omitempty"`
	Salary     *float64   `json:"salary,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// PaginatedStaffList represents a paginated list of staff members
type PaginatedStaffList struct {
	Staff      []StaffMember   `json:"staff"`
	Pagination pagination.Meta `json:"pagination"`
}

package identity

import "time"

// Role names stored on user accounts. Role is immutable after signup.
const (
	RoleAdmin   = "Admin"
	RoleDoctor  = "Doctor"
	RoleNurse   = "Nurse"
	RolePatient = "Patient"
	RoleStaff   = "Staff"
)

// ValidRoles enumerates the accepted account roles.
var ValidRoles = map[string]bool{
	RoleAdmin:   true,
	RoleDoctor:  true,
	RoleNurse:   true,
	RolePatient: true,
	RoleStaff:   true,
}

// User represents an account in the system
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// SignupRequest represents the request to create a new account
type SignupRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
	FullName        string `json:"full_name"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	// LinkedID names the existing patient/doctor/staff record this account
	// belongs to. Required for every role except Admin.
	LinkedID string `json:"linked_id,omitempty"`
}

// Validate validates the signup request
func (r *SignupRequest) Validate() error {
	if len(r.Username) < 3 {
		return ErrUsernameTooShort
	}
	if len(r.Password) < 6 {
		return ErrPasswordTooShort
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if r.FullName == "" {
		return ErrMissingFullName
	}
	if !ValidRoles[r.Role] {
		return ErrInvalidRole
	}
	if r.Role != RoleAdmin && r.LinkedID == "" {
		return ErrMissingLinkedRecord
	}
	return nil
}

// LoginRequest represents the credentials presented at login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session describes an authenticated session as returned to the client.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
	// LinkedID is the patient or doctor record owned by the account, empty
	// when the role has none.
	LinkedID string `json:"linked_id,omitempty"`
	// Landing is the role-specific view the client should open.
	Landing string `json:"landing"`
}

// Landing view names per role.
const (
	LandingAdmin     = "admin"
	LandingDoctor    = "doctor"
	LandingPatient   = "patient"
	LandingDashboard = "dashboard"
)

// LandingForRole resolves the role-specific view: Admin gets the admin view,
// Doctor and Patient their dashboards, every other role the generic dashboard.
func LandingForRole(role string) string {
	switch role {
	case RoleAdmin:
		return LandingAdmin
	case RoleDoctor:
		return LandingDoctor
	case RolePatient:
		return LandingPatient
	default:
		return LandingDashboard
	}
}

// linkTableForRole maps an account role to the registry table its linked
// record lives in. Nurses link to staff records.
func linkTableForRole(role string) string {
	switch role {
	case RolePatient:
		return "patients"
	case RoleDoctor:
		return "doctors"
	case RoleNurse, RoleStaff:
		return "staff"
	default:
		return ""
	}
}

package identity

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrDuplicateUsername    = errors.New("username already exists")
	ErrUsernameTooShort     = errors.New("username must be at least 3 characters long")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters long")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrMissingFullName      = errors.New("full name is required")
	ErrInvalidRole          = errors.New("invalid role")
	ErrMissingLinkedRecord  = errors.New("a person record to link is required for this role")
	ErrLinkedRecordNotFound = errors.New("linked person record not found")
	ErrUserNotFound         = errors.New("user not found")
)

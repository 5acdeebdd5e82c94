package identity

import "context"

// RepositoryInterface defines the contract for the user store.
// This allows for easy mocking in tests.
type RepositoryInterface interface {
	Create(ctx context.Context, user *User) error
	CreateLinked(ctx context.Context, user *User, linkedID string) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	FindLinkedID(ctx context.Context, role, userID string) (string, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

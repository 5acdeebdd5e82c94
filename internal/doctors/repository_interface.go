package doctors

import "context"

// RepositoryInterface defines the contract for doctor data operations.
// This allows for easy mocking in tests.
type RepositoryInterface interface {
	Create(ctx context.Context, req DoctorRequest) (*Doctor, error)
	List(ctx context.Context, search string, limit, offset int) ([]Doctor, int, error)
	GetByID(ctx context.Context, id string) (*Doctor, error)
	Update(ctx context.Context, id string, req DoctorRequest) (*Doctor, error)
	Delete(ctx context.Context, id string) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

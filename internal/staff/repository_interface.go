package staff

import "context"

// RepositoryInterface defines the contract for staff data operations.
// This allows for easy mocking in tests.
type RepositoryInterface interface {
	Create(ctx context.Context, req StaffRequest) (*StaffMember, error)
	List(ctx context.Context, search string, limit, offset int) ([]StaffMember, int, error)
	GetByID(ctx context.Context, id string) (*StaffMember, error)
	Update(ctx context.Context, id string, req StaffRequest) (*StaffMember, error)
	Delete(ctx context.Context, id string) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

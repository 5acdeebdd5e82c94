package patients

import "context"

// RepositoryInterface defines the contract for patient data operations.
// This allows for easy mocking in tests.
type RepositoryInterface interface {
	Create(ctx context.Context, req PatientRequest, age *int) (*Patient, error)
	List(ctx context.Context, search string, limit, offset int) ([]Patient, int, error)
	GetByID(ctx context.Context, id string) (*Patient, error)
	Update(ctx context.Context, id string, req PatientRequest, age *int) (*Patient, error)
	Delete(ctx context.Context, id string) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

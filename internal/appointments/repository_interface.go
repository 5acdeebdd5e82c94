package appointments

import "context"

// RepositoryInterface defines the contract for appointment data operations.
// This allows for easy mocking in tests.
type RepositoryInterface interface {
	Create(ctx context.Context, req AppointmentRequest) (*Appointment, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Appointment, int, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	Update(ctx context.Context, id string, req AppointmentRequest) (*Appointment, error)
	SetStatus(ctx context.Context, id, oldStatus, newStatus string) (*Appointment, error)
	Delete(ctx context.Context, id string) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)

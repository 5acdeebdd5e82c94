package doctors

import (
	"context"

	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

// ServiceInterface defines the contract for the doctor registry service
type ServiceInterface interface {
	CreateDoctor(ctx context.Context, actor string, req DoctorRequest) (*Doctor, error)
	ListDoctors(ctx context.Context, params pagination.Params) (*PaginatedDoctorList, error)
	GetDoctor(ctx context.Context, id string) (*Doctor, error)
	UpdateDoctor(ctx context.Context, actor, id string, req DoctorRequest) (*Doctor, error)
	DeleteDoctor(ctx context.Context, actor, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

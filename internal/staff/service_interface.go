package staff

import (
	"context"

	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

// ServiceInterface defines the contract for the staff registry service
type ServiceInterface interface {
	CreateStaff(ctx context.Context, actor string, req StaffRequest) (*StaffMember, error)
	ListStaff(ctx context.Context, params pagination.Params) (*PaginatedStaffList, error)
	GetStaff(ctx context.Context, id string) (*StaffMember, error)
	UpdateStaff(ctx context.Context, actor, id string, req StaffRequest) (*StaffMember, error)
	DeleteStaff(ctx context.Context, actor, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

package appointments

import (
	"context"

	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

// ServiceInterface defines the contract for the appointment ledger service
type ServiceInterface interface {
	CreateAppointment(ctx context.Context, actor string, req AppointmentRequest) (*Appointment, error)
	ListAppointments(ctx context.Context, params pagination.Params, patientID, doctorID string) (*PaginatedAppointmentList, error)
	GetAppointment(ctx context.Context, id string) (*Appointment, error)
	UpdateAppointment(ctx context.Context, actor, id string, req AppointmentRequest) (*Appointment, error)
	TransitionStatus(ctx context.Context, actor, id, newStatus string) (*Appointment, error)
	DeleteAppointment(ctx context.Context, actor, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

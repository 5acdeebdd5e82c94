package patients

import (
	"context"

	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

// ServiceInterface defines the contract for the patient registry service
type ServiceInterface interface {
	CreatePatient(ctx context.Context, actor string, req PatientRequest) (*Patient, error)
	ListPatients(ctx context.Context, params pagination.Params) (*PaginatedPatientList, error)
	GetPatient(ctx context.Context, id string) (*Patient, error)
	UpdatePatient(ctx context.Context, actor, id string, req PatientRequest) (*Patient, error)
	DeletePatient(ctx context.Context, actor, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

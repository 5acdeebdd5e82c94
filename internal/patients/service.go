package patients

import (
	"context"
	"fmt"
	"time"

	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

// ActivityRecorder appends best-effort entries to the activity feed.
type ActivityRecorder interface {
	Record(ctx context.Context, actor, action, detail string)
}

// StatsInvalidator drops the cached dashboard snapshot after a write.
type StatsInvalidator interface {
	Invalidate()
}

type Service struct {
	repo     RepositoryInterface
	activity ActivityRecorder
	stats    StatsInvalidator
}

func NewService(repo RepositoryInterface, activity ActivityRecorder, stats StatsInvalidator) *Service {
	return &Service{
		repo:     repo,
		activity: activity,
		stats:    stats,
	}
}

// ageFor recomputes the stored age from the request's date of birth. Validate
// has already checked the format, so a parse failure here means no date was
// given.
func ageFor(dateOfBirth string) *int {
	if dateOfBirth == "" {
		return nil
	}
	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return nil
	}
	age := ComputeAge(dob, time.Now())
	return &age
}

func (s *Service) CreatePatient(ctx context.Context, actor string, req PatientRequest) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	patient, err := s.repo.Create(ctx, req, ageFor(req.DateOfBirth))
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "patient.created", fmt.Sprintf("%s %s (%s)", patient.FirstName, patient.LastName, patient.PatientID))
	}

	return patient, nil
}

func (s *Service) ListPatients(ctx context.Context, params pagination.Params) (*PaginatedPatientList, error) {
	params.Validate()

	patients, total, err := s.repo.List(ctx, params.Search, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, err
	}
	if patients == nil {
		patients = []Patient{}
	}

	return &PaginatedPatientList{
		Patients:   patients,
		Pagination: params.CalculateMeta(total),
	}, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, actor, id string, req PatientRequest) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	patient, err := s.repo.Update(ctx, id, req, ageFor(req.DateOfBirth))
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "patient.updated", fmt.Sprintf("%s %s (%s)", patient.FirstName, patient.LastName, patient.PatientID))
	}

	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "patient.deleted", id)
	}

	return nil
}

package doctors

import (
	"context"
	"fmt"

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

func (s *Service) CreateDoctor(ctx context.Context, actor string, req DoctorRequest) (*Doctor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doctor, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "doctor.created", fmt.Sprintf("%s %s (%s)", doctor.FirstName, doctor.LastName, doctor.Specialization))
	}

	return doctor, nil
}

func (s *Service) ListDoctors(ctx context.Context, params pagination.Params) (*PaginatedDoctorList, error) {
	params.Validate()

	doctors, total, err := s.repo.List(ctx, params.Search, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, err
	}
	if doctors == nil {
		doctors = []Doctor{}
	}

	return &PaginatedDoctorList{
		Doctors:    doctors,
		Pagination: params.CalculateMeta(total),
	}, nil
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, actor, id string, req DoctorRequest) (*Doctor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doctor, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "doctor.updated", fmt.Sprintf("%s %s (%s)", doctor.FirstName, doctor.LastName, doctor.Specialization))
	}

	return doctor, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "doctor.deleted", id)
	}

	return nil
}

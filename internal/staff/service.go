package staff

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

func (s *Service) CreateStaff(ctx context.Context, actor string, req StaffRequest) (*StaffMember, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	member, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "staff.created", fmt.Sprintf("%s %s (%s)", member.FirstName, member.LastName, member.Role))
	}

	return member, nil
}

func (s *Service) ListStaff(ctx context.Context, params pagination.Params) (*PaginatedStaffList, error) {
	params.Validate()

	members, total, err := s.repo.List(ctx, params.Search, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []StaffMember{}
	}

	return &PaginatedStaffList{
		Staff:      members,
		Pagination: params.CalculateMeta(total),
	}, nil
}

func (s *Service) GetStaff(ctx context.Context, id string) (*StaffMember, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateStaff(ctx context.Context, actor, id string, req StaffRequest) (*StaffMember, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	member, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "staff.updated", fmt.Sprintf("%s %s (%s)", member.FirstName, member.LastName, member.Role))
	}

	return member, nil
}

func (s *Service) DeleteStaff(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "staff.deleted", id)
	}

	return nil
}

package appointments

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

func (s *Service) CreateAppointment(ctx context.Context, actor string, req AppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	appointment, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "appointment.created",
			fmt.Sprintf("%s with %s on %s %s", appointment.PatientName, appointment.DoctorName, appointment.Date, appointment.Time))
	}

	return appointment, nil
}

func (s *Service) ListAppointments(ctx context.Context, params pagination.Params, patientID, doctorID string) (*PaginatedAppointmentList, error) {
	params.Validate()

	f := Filter{
		Search:    params.Search,
		PatientID: patientID,
		DoctorID:  doctorID,
	}

	appointments, total, err := s.repo.List(ctx, f, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []Appointment{}
	}

	return &PaginatedAppointmentList{
		Appointments: appointments,
		Pagination:   params.CalculateMeta(total),
	}, nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, actor, id string, req AppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	appointment, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "appointment.updated",
			fmt.Sprintf("%s with %s on %s %s", appointment.PatientName, appointment.DoctorName, appointment.Date, appointment.Time))
	}

	return appointment, nil
}

// TransitionStatus moves an appointment along the status lifecycle. Setting
// the current status again returns the appointment unchanged.
func (s *Service) TransitionStatus(ctx context.Context, actor, id, newStatus string) (*Appointment, error) {
	if !validStatuses[newStatus] {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == newStatus {
		return current, nil
	}
	if !CanTransition(current.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, newStatus)
	}

	appointment, err := s.repo.SetStatus(ctx, id, current.Status, newStatus)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "appointment.status_changed",
			fmt.Sprintf("%s: %s -> %s", id, current.Status, newStatus))
	}

	return appointment, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.stats != nil {
		s.stats.Invalidate()
	}
	if s.activity != nil {
		s.activity.Record(ctx, actor, "appointment.deleted", id)
	}

	return nil
}

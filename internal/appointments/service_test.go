package appointments

import (
	"context"
	"errors"
	"testing"

	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

type mockRepository struct {
	createFunc    func(ctx context.Context, req AppointmentRequest) (*Appointment, error)
	listFunc      func(ctx context.Context, f Filter, limit, offset int) ([]Appointment, int, error)
	getByIDFunc   func(ctx context.Context, id string) (*Appointment, error)
	updateFunc    func(ctx context.Context, id string, req AppointmentRequest) (*Appointment, error)
	setStatusFunc func(ctx context.Context, id, oldStatus, newStatus string) (*Appointment, error)
	deleteFunc    func(ctx context.Context, id string) error
}

func (m *mockRepository) Create(ctx context.Context, req AppointmentRequest) (*Appointment, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) List(ctx context.Context, f Filter, limit, offset int) ([]Appointment, int, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, f, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Update(ctx context.Context, id string, req AppointmentRequest) (*Appointment, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) SetStatus(ctx context.Context, id, oldStatus, newStatus string) (*Appointment, error) {
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, id, oldStatus, newStatus)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

// TestCanTransition covers the whole status lifecycle table
func TestCanTransition(t *testing.T) {
	testCases := []struct {
		from string
		to   string
		want bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusScheduled, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusScheduled, StatusScheduled, true},
		{StatusCompleted, StatusCompleted, true},
	}

	for _, tc := range testCases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// TestTransitionStatus_Success verifies a legal transition writes through
func TestTransitionStatus_Success(t *testing.T) {
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Appointment, error) {
			return &Appointment{ID: id, Status: StatusScheduled}, nil
		},
		setStatusFunc: func(ctx context.Context, id, oldStatus, newStatus string) (*Appointment, error) {
			if oldStatus != StatusScheduled || newStatus != StatusConfirmed {
				t.Errorf("Unexpected transition %s -> %s", oldStatus, newStatus)
			}
			return &Appointment{ID: id, Status: newStatus}, nil
		},
	}

	service := NewService(mockRepo, nil, nil)

	appointment, err := service.TransitionStatus(context.Background(), "admin", "appt-123", StatusConfirmed)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if appointment.Status != StatusConfirmed {
		t.Errorf("Expected status Confirmed, got %s", appointment.Status)
	}
}

// TestTransitionStatus_SameStatusNoOp verifies repeating the current status skips the write
func TestTransitionStatus_SameStatusNoOp(t *testing.T) {
	setStatusCalled := false
	mockRepo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Appointment, error) {
			return &Appointment{ID: id, Status: StatusConfirmed}, nil
		},
		setStatusFunc: func(ctx context.Context, id, oldStatus, newStatus string) (*Appointment, error) {
			setStatusCalled = true
			return nil, errors.New("should not be called")
		},
	}

	service := NewService(mockRepo, nil, nil)

	appointment, err := service.TransitionStatus(context.Background(), "admin", "appt-123", StatusConfirmed)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if setStatusCalled {
		t.Error("Expected no status write for a same-status request")
	}
	if appointment.Status != StatusConfirmed {
		t.Errorf("Expected status Confirmed, got %s", appointment.Status)
	}
}

// TestTransitionStatus_TerminalStates verifies completed and cancelled appointments stay put
func TestTransitionStatus_TerminalStates(t *testing.T) {
	for _, terminal := range []string{StatusCompleted, StatusCancelled} {
		mockRepo := &mockRepository{
			getByIDFunc: func(ctx context.Context, id string) (*Appointment, error) {
				return &Appointment{ID: id, Status: terminal}, nil
			},
		}

		service := NewService(mockRepo, nil, nil)

		_, err := service.TransitionStatus(context.Background(), "admin", "appt-123", StatusScheduled)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Expected ErrInvalidTransition from %s, got %v", terminal, err)
		}
	}
}

// TestTransitionStatus_UnknownStatus rejects statuses outside the lifecycle
func TestTransitionStatus_UnknownStatus(t *testing.T) {
	service := NewService(&mockRepository{}, nil, nil)

	_, err := service.TransitionStatus(context.Background(), "admin", "appt-123", "Pending")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}

// TestCreateAppointment_NormalizesTime checks unpadded date and time input
// is stored in padded form, since schedule order sorts the stored strings
func TestCreateAppointment_NormalizesTime(t *testing.T) {
	var stored AppointmentRequest
	repo := &mockRepository{
		createFunc: func(ctx context.Context, req AppointmentRequest) (*Appointment, error) {
			stored = req
			return &Appointment{ID: "appt-1", Status: StatusScheduled}, nil
		},
	}
	service := NewService(repo, nil, nil)

	_, err := service.CreateAppointment(context.Background(), "admin", AppointmentRequest{
		PatientID: "pat-1",
		DoctorID:  "doc-1",
		Date:      "2026-9-5",
		Time:      "9:05",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if stored.Time != "09:05" {
		t.Errorf("Expected time normalized to 09:05, got %q", stored.Time)
	}
	if stored.Date != "2026-09-05" {
		t.Errorf("Expected date normalized to 2026-09-05, got %q", stored.Date)
	}
}

// TestCreateAppointment_Validation covers the booking field checks
func TestCreateAppointment_Validation(t *testing.T) {
	service := NewService(&mockRepository{}, nil, nil)

	testCases := []struct {
		name    string
		req     AppointmentRequest
		wantErr error
	}{
		{
			name:    "Missing patient",
			req:     AppointmentRequest{DoctorID: "doc-1", Date: "2026-09-01", Time: "10:30"},
			wantErr: ErrMissingPatient,
		},
		{
			name:    "Missing doctor",
			req:     AppointmentRequest{PatientID: "pat-1", Date: "2026-09-01", Time: "10:30"},
			wantErr: ErrMissingDoctor,
		},
		{
			name:    "Bad date",
			req:     AppointmentRequest{PatientID: "pat-1", DoctorID: "doc-1", Date: "01/09/2026", Time: "10:30"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "Bad time",
			req:     AppointmentRequest{PatientID: "pat-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:30 AM"},
			wantErr: ErrInvalidTime,
		},
		{
			name:    "Missing time",
			req:     AppointmentRequest{PatientID: "pat-1", DoctorID: "doc-1", Date: "2026-09-01"},
			wantErr: ErrInvalidTime,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateAppointment(context.Background(), "admin", tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// TestListAppointments_PatientFilter verifies filters reach the repository
func TestListAppointments_PatientFilter(t *testing.T) {
	var gotFilter Filter
	mockRepo := &mockRepository{
		listFunc: func(ctx context.Context, f Filter, limit, offset int) ([]Appointment, int, error) {
			gotFilter = f
			return []Appointment{}, 0, nil
		},
	}

	service := NewService(mockRepo, nil, nil)

	_, err := service.ListAppointments(context.Background(),
		pagination.Params{Page: 2, Limit: 10, Search: "smith"}, "pat-1", "doc-2")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotFilter.PatientID != "pat-1" || gotFilter.DoctorID != "doc-2" || gotFilter.Search != "smith" {
		t.Errorf("Unexpected filter: %+v", gotFilter)
	}
}

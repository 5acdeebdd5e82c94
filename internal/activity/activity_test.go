package activity

import (
	"context"
	"errors"
	"testing"
)

type mockStore struct {
	insertFunc func(ctx context.Context, actor, action, detail string) error
	recentFunc func(ctx context.Context, limit int) ([]Entry, error)
}

func (m *mockStore) Insert(ctx context.Context, actor, action, detail string) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, actor, action, detail)
	}
	return errors.New("not implemented")
}

func (m *mockStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if m.recentFunc != nil {
		return m.recentFunc(ctx, limit)
	}
	return nil, errors.New("not implemented")
}

// TestRecord_SwallowsFailure verifies a failed insert does not panic or propagate
func TestRecord_SwallowsFailure(t *testing.T) {
	store := &mockStore{
		insertFunc: func(ctx context.Context, actor, action, detail string) error {
			return errors.New("connection refused")
		},
	}

	service := NewService(store)
	service.Record(context.Background(), "admin", "patient.created", "John Doe")
}

type countingRecorder struct {
	counts map[string]int
}

func (c *countingRecorder) record(entity, op string) {
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[entity+"."+op]++
}

func (c *countingRecorder) RecordPatientOperation(ctx context.Context, op string) {
	c.record("patient", op)
}

func (c *countingRecorder) RecordDoctorOperation(ctx context.Context, op string) {
	c.record("doctor", op)
}

func (c *countingRecorder) RecordStaffOperation(ctx context.Context, op string) {
	c.record("staff", op)
}

func (c *countingRecorder) RecordAppointmentOperation(ctx context.Context, op string) {
	c.record("appointment", op)
}

func (c *countingRecorder) RecordUserOperation(ctx context.Context, op string) {
	c.record("user", op)
}

// TestRecord_CountsOperations verifies each recorded action increments the
// matching entity counter
func TestRecord_CountsOperations(t *testing.T) {
	store := &mockStore{
		insertFunc: func(ctx context.Context, actor, action, detail string) error {
			return nil
		},
	}
	recorder := &countingRecorder{}
	service := NewServiceWithMetrics(store, recorder)

	ctx := context.Background()
	service.Record(ctx, "admin", "patient.created", "")
	service.Record(ctx, "admin", "patient.deleted", "")
	service.Record(ctx, "admin", "appointment.status_changed", "")
	service.Record(ctx, "admin", "user.login", "")
	service.Record(ctx, "admin", "login", "") // no entity prefix, not counted

	want := map[string]int{
		"patient.created":            1,
		"patient.deleted":            1,
		"appointment.status_changed": 1,
		"user.login":                 1,
	}
	for key, count := range want {
		if recorder.counts[key] != count {
			t.Errorf("Expected %d for %s, got %d", count, key, recorder.counts[key])
		}
	}
	if len(recorder.counts) != len(want) {
		t.Errorf("Expected %d counters, got %v", len(want), recorder.counts)
	}
}

// TestRecent_EmptyFeed verifies an empty feed serializes as an empty slice
func TestRecent_EmptyFeed(t *testing.T) {
	store := &mockStore{
		recentFunc: func(ctx context.Context, limit int) ([]Entry, error) {
			if limit != defaultFeedSize {
				t.Errorf("Expected limit %d, got %d", defaultFeedSize, limit)
			}
			return nil, nil
		},
	}

	service := NewService(store)

	entries, err := service.Recent(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if entries == nil {
		t.Error("Expected empty slice, got nil")
	}
}

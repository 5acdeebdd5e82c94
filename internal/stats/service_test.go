package stats

import (
	"context"
	"testing"
	"time"
)

type mockCollector struct {
	calls    int
	snapshot *Snapshot
	err      error
}

func (m *mockCollector) Collect(ctx context.Context) (*Snapshot, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshot, nil
}

// TestSnapshot_CacheHit verifies a fresh snapshot is served without recollecting
func TestSnapshot_CacheHit(t *testing.T) {
	collector := &mockCollector{
		snapshot: &Snapshot{Patients: 10, Doctors: 3, Staff: 5, AppointmentsToday: 7, GeneratedAt: time.Now()},
	}

	service := NewService(collector)

	first, err := service.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	second, err := service.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if collector.calls != 1 {
		t.Errorf("Expected 1 collection, got %d", collector.calls)
	}
	if first != second {
		t.Error("Expected the cached snapshot to be reused")
	}
	if first.Patients != 10 || first.AppointmentsToday != 7 {
		t.Errorf("Unexpected snapshot: %+v", first)
	}
}

// TestSnapshot_InvalidateForcesRecollect verifies writes drop the cache
func TestSnapshot_InvalidateForcesRecollect(t *testing.T) {
	collector := &mockCollector{snapshot: &Snapshot{Patients: 10}}

	service := NewService(collector)

	if _, err := service.Snapshot(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	service.Invalidate()
	collector.snapshot = &Snapshot{Patients: 11}

	snapshot, err := service.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if collector.calls != 2 {
		t.Errorf("Expected 2 collections, got %d", collector.calls)
	}
	if snapshot.Patients != 11 {
		t.Errorf("Expected recollected count 11, got %d", snapshot.Patients)
	}
}

// TestSnapshot_TTLExpiry verifies the cache expires on its own
func TestSnapshot_TTLExpiry(t *testing.T) {
	collector := &mockCollector{snapshot: &Snapshot{Patients: 10}}

	service := NewService(collector)
	service.ttl = 10 * time.Millisecond

	if _, err := service.Snapshot(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := service.Snapshot(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if collector.calls != 2 {
		t.Errorf("Expected 2 collections after TTL expiry, got %d", collector.calls)
	}
}

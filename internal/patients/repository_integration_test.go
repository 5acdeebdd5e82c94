//go:build integration

package patients

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/healthnet-hms/clinic-service/internal/messaging"
	"github.com/healthnet-hms/clinic-service/internal/testutil"
)

// TestRepositoryCreatePatient_Integration tests creating a patient against a
// live database
func TestRepositoryCreatePatient_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	defer testutil.CleanupTestDB(t, db)

	publisher := testutil.NewMockPublisher()
	repo := NewRepository(db, publisher)

	age := 36
	req := PatientRequest{
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: "1990-01-15",
		Gender:      "Male",
		Phone:       "+1234567890",
		Email:       "john.doe@example.com",
		Address:     "123 Main St",
	}

	patient, err := repo.Create(context.Background(), req, &age)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if patient.ID == "" {
		t.Error("Expected patient ID to be set")
	}
	if !strings.HasPrefix(patient.PatientID, "PT-") {
		t.Errorf("Expected generated PT- code, got %s", patient.PatientID)
	}
	if patient.FirstName != "John" {
		t.Errorf("Expected first name John, got %s", patient.FirstName)
	}
	if patient.Age == nil || *patient.Age != 36 {
		t.Errorf("Expected age 36, got %v", patient.Age)
	}

	publisher.AssertEventPublished(t, messaging.EventPatientCreated)
}

// TestRepositoryListPatients_Search_Integration tests the search filter over
// name and email
func TestRepositoryListPatients_Search_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	defer testutil.CleanupTestDB(t, db)

	repo := NewRepository(db, nil)
	ctx := context.Background()

	for _, req := range []PatientRequest{
		{FirstName: "Alice", LastName: "Smith", Email: "alice@example.com"},
		{FirstName: "Bob", LastName: "Jones", Email: "bob@example.com"},
		{FirstName: "Carol", LastName: "Smithson", Email: "carol@example.com"},
	} {
		if _, err := repo.Create(ctx, req, nil); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	results, total, err := repo.List(ctx, "smith", 20, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected 2 matches for 'smith', got %d", total)
	}
	for _, p := range results {
		if !strings.Contains(strings.ToLower(p.LastName), "smith") {
			t.Errorf("Unexpected match: %s %s", p.FirstName, p.LastName)
		}
	}
}

// TestRepositoryUpdatePatient_Integration tests the full-replace update
func TestRepositoryUpdatePatient_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	defer testutil.CleanupTestDB(t, db)

	repo := NewRepository(db, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, PatientRequest{FirstName: "Alice", LastName: "Smith"}, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	age := 41
	updated, err := repo.Update(ctx, created.ID, PatientRequest{
		PatientID:   created.PatientID,
		FirstName:   "Alice",
		LastName:    "Brown",
		DateOfBirth: "1985-05-20",
		Phone:       "+1999999999",
	}, &age)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.LastName != "Brown" {
		t.Errorf("Expected last name Brown, got %s", updated.LastName)
	}
	if updated.Age == nil || *updated.Age != 41 {
		t.Errorf("Expected age 41, got %v", updated.Age)
	}
	if updated.UpdatedAt == nil {
		t.Error("Expected updated_at to be set")
	}
}

// TestRepositoryDeletePatient_Integration tests delete and the not-found path
func TestRepositoryDeletePatient_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	defer testutil.CleanupTestDB(t, db)

	publisher := testutil.NewMockPublisher()
	repo := NewRepository(db, publisher)
	ctx := context.Background()

	created, err := repo.Create(ctx, PatientRequest{FirstName: "Alice", LastName: "Smith"}, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	publisher.AssertEventPublished(t, messaging.EventPatientDeleted)

	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Expected ErrPatientNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, created.ID); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Expected ErrPatientNotFound on second delete, got %v", err)
	}
}

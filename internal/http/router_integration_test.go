//go:build integration

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/healthnet-hms/clinic-service/internal/auth"
	"github.com/healthnet-hms/clinic-service/internal/identity"
	"github.com/healthnet-hms/clinic-service/internal/testutil"
)

func testPermissions() auth.Permissions {
	return auth.Permissions{
		identity.RoleAdmin: {
			"patient:view", "patient:create", "patient:update", "patient:delete",
			"doctor:view", "doctor:create", "doctor:update", "doctor:delete",
			"staff:view", "staff:create", "staff:update", "staff:delete",
			"appointment:view", "appointment:create", "appointment:update", "appointment:delete",
			"stats:view", "activity:view",
		},
		identity.RolePatient: {"appointment:view"},
	}
}

// TestRouter_PatientLifecycle_Integration drives a patient create/get/delete
// cycle through the full HTTP stack
func TestRouter_PatientLifecycle_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	defer testutil.CleanupTestDB(t, db)

	verifier := testutil.NewTestVerifier(t)
	publisher := testutil.NewMockPublisher()
	router := SetupRouter(db, verifier, testPermissions(), publisher, nil)
	server := httptest.NewServer(router)
	defer server.Close()

	adminToken := testutil.IssueTestToken(t, verifier, "admin", identity.RoleAdmin, "")

	body, _ := json.Marshal(map[string]string{
		"first_name":    "Alice",
		"last_name":     "Smith",
		"date_of_birth": "1990-01-15",
	})
	req, _ := http.NewRequest(http.MethodPost, server.URL+"/patients", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Create request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var created struct {
		Patient struct {
			ID string `json:"id"`
		} `json:"patient"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode create response: %v", err)
	}
	if created.Patient.ID == "" {
		t.Fatal("Expected patient id in response")
	}

	req, _ = http.NewRequest(http.MethodGet, server.URL+"/patients/"+created.Patient.ID, nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Get request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodDelete, server.URL+"/patients/"+created.Patient.ID, nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Delete request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

// TestRouter_PermissionDenied_Integration verifies the role guard rejects a
// Patient-role token on a registry write
func TestRouter_PermissionDenied_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	defer testutil.CleanupTestDB(t, db)

	verifier := testutil.NewTestVerifier(t)
	router := SetupRouter(db, verifier, testPermissions(), testutil.NewMockPublisher(), nil)
	server := httptest.NewServer(router)
	defer server.Close()

	patientToken := testutil.IssueTestToken(t, verifier, "pt1", identity.RolePatient, "pat-1")

	body, _ := json.Marshal(map[string]string{"first_name": "X", "last_name": "Y"})
	req, _ := http.NewRequest(http.MethodPost, server.URL+"/patients", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+patientToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}
}

// TestRouter_NoToken_Integration verifies protected routes reject anonymous
// requests while /health stays public
func TestRouter_NoToken_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	defer testutil.CleanupTestDB(t, db)

	router := SetupRouter(db, testutil.NewTestVerifier(t), testPermissions(), testutil.NewMockPublisher(), nil)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/patients")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("Health request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 from /health, got %d", resp.StatusCode)
	}
}

package appointments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/healthnet-hms/clinic-service/internal/auth"
	"github.com/healthnet-hms/clinic-service/internal/pagination"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	createAppointmentFunc func(ctx context.Context, actor string, req AppointmentRequest) (*Appointment, error)
	listAppointmentsFunc  func(ctx context.Context, params pagination.Params, patientID, doctorID string) (*PaginatedAppointmentList, error)
	getAppointmentFunc    func(ctx context.Context, id string) (*Appointment, error)
	updateAppointmentFunc func(ctx context.Context, actor, id string, req AppointmentRequest) (*Appointment, error)
	transitionStatusFunc  func(ctx context.Context, actor, id, newStatus string) (*Appointment, error)
	deleteAppointmentFunc func(ctx context.Context, actor, id string) error
}

func (m *mockService) CreateAppointment(ctx context.Context, actor string, req AppointmentRequest) (*Appointment, error) {
	if m.createAppointmentFunc != nil {
		return m.createAppointmentFunc(ctx, actor, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListAppointments(ctx context.Context, params pagination.Params, patientID, doctorID string) (*PaginatedAppointmentList, error) {
	if m.listAppointmentsFunc != nil {
		return m.listAppointmentsFunc(ctx, params, patientID, doctorID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	if m.getAppointmentFunc != nil {
		return m.getAppointmentFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) UpdateAppointment(ctx context.Context, actor, id string, req AppointmentRequest) (*Appointment, error) {
	if m.updateAppointmentFunc != nil {
		return m.updateAppointmentFunc(ctx, actor, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) TransitionStatus(ctx context.Context, actor, id, newStatus string) (*Appointment, error) {
	if m.transitionStatusFunc != nil {
		return m.transitionStatusFunc(ctx, actor, id, newStatus)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) DeleteAppointment(ctx context.Context, actor, id string) error {
	if m.deleteAppointmentFunc != nil {
		return m.deleteAppointmentFunc(ctx, actor, id)
	}
	return errors.New("not implemented")
}

func authedRequest(req *http.Request) *http.Request {
	principal := &auth.Principal{
		UserID:   "user-123",
		Username: "admin",
		Role:     "Admin",
	}
	return req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	errType, _ := body["error"].(string)
	return errType
}

// TestHandlerCreateAppointment_MissingPatient verifies a booking that names a
// nonexistent patient comes back as a validation error, not a missing resource
func TestHandlerCreateAppointment_MissingPatient(t *testing.T) {
	mockSvc := &mockService{
		createAppointmentFunc: func(ctx context.Context, actor string, req AppointmentRequest) (*Appointment, error) {
			return nil, ErrPatientNotFound
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(AppointmentRequest{
		PatientID: "no-such-patient",
		DoctorID:  "doc-1",
		Date:      "2026-09-01",
		Time:      "10:30",
	})
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewReader(body)))
	rr := httptest.NewRecorder()
	handler.CreateAppointment(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
	if errType := decodeError(t, rr); errType != "validation_error" {
		t.Errorf("Expected error type 'validation_error', got '%s'", errType)
	}
}

// TestHandlerUpdateAppointment_MissingDoctor verifies the same mapping on the
// update path
func TestHandlerUpdateAppointment_MissingDoctor(t *testing.T) {
	mockSvc := &mockService{
		updateAppointmentFunc: func(ctx context.Context, actor, id string, req AppointmentRequest) (*Appointment, error) {
			return nil, ErrDoctorNotFound
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(AppointmentRequest{
		PatientID: "pat-1",
		DoctorID:  "no-such-doctor",
		Date:      "2026-09-01",
		Time:      "10:30",
	})
	req := authedRequest(httptest.NewRequest(http.MethodPut, "/appointments/appt-1", bytes.NewReader(body)))
	req = mux.SetURLVars(req, map[string]string{"id": "appt-1"})
	rr := httptest.NewRecorder()
	handler.UpdateAppointment(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
	if errType := decodeError(t, rr); errType != "validation_error" {
		t.Errorf("Expected error type 'validation_error', got '%s'", errType)
	}
}

// TestHandlerUpdateAppointment_NotFound verifies an unknown appointment id
// still responds 404
func TestHandlerUpdateAppointment_NotFound(t *testing.T) {
	mockSvc := &mockService{
		updateAppointmentFunc: func(ctx context.Context, actor, id string, req AppointmentRequest) (*Appointment, error) {
			return nil, ErrAppointmentNotFound
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(AppointmentRequest{
		PatientID: "pat-1",
		DoctorID:  "doc-1",
		Date:      "2026-09-01",
		Time:      "10:30",
	})
	req := authedRequest(httptest.NewRequest(http.MethodPut, "/appointments/missing", bytes.NewReader(body)))
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	rr := httptest.NewRecorder()
	handler.UpdateAppointment(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

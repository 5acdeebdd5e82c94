package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys as constants
const (
	// Patient registry events
	EventPatientCreated = "patient.created"
	EventPatientUpdated = "patient.updated"
	EventPatientDeleted = "patient.deleted"

	// Doctor registry events
	EventDoctorCreated = "doctor.created"
	EventDoctorUpdated = "doctor.updated"
	EventDoctorDeleted = "doctor.deleted"

	// Staff registry events
	EventStaffCreated = "staff.created"
	EventStaffUpdated = "staff.updated"
	EventStaffDeleted = "staff.deleted"

	// Appointment ledger events
	EventAppointmentCreated       = "appointment.created"
	EventAppointmentUpdated       = "appointment.updated"
	EventAppointmentStatusChanged = "appointment.status_changed"

	// Account events
	EventUserCreated = "user.created"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// PersonEvent carries the identity of a registry record for
// created/updated/deleted events across patients, doctors and staff.
type PersonEvent struct {
	BaseEvent
	Data PersonEventData `json:"data"`
}

type PersonEventData struct {
	RecordID  string `json:"record_id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AppointmentEvent represents appointment creation and full updates.
type AppointmentEvent struct {
	BaseEvent
	Data AppointmentEventData `json:"data"`
}

type AppointmentEventData struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	DoctorID      string `json:"doctor_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
}

// AppointmentStatusChangedEvent represents a status-only transition.
type AppointmentStatusChangedEvent struct {
	BaseEvent
	Data AppointmentStatusChangedData `json:"data"`
}

type AppointmentStatusChangedData struct {
	AppointmentID string    `json:"appointment_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	ChangedAt     time.Time `json:"changed_at"`
}

// UserCreatedEvent represents a new account signup.
type UserCreatedEvent struct {
	BaseEvent
	Data UserCreatedData `json:"data"`
}

type UserCreatedData struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	LinkedID  string    `json:"linked_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		ServiceName: "clinic-service",
	}
}

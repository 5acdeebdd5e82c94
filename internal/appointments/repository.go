package appointments

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/healthnet-hms/clinic-service/internal/messaging"
)

type Repository struct {
	db        *sql.DB
	publisher messaging.PublisherInterface
}

func NewRepository(db *sql.DB, publisher messaging.PublisherInterface) *Repository {
	return &Repository{
		db:        db,
		publisher: publisher,
	}
}

const appointmentSelect = `
	SELECT a.id, a.patient_id, p.first_name || ' ' || p.last_name AS patient_name,
	       a.doctor_id, d.first_name || ' ' || d.last_name AS doctor_name,
	       a.appointment_date, a.appointment_time, a.status, a.notes, a.created_at, a.updated_at
	FROM healthnet.appointments a
	JOIN healthnet.patients p ON p.id = a.patient_id
	JOIN healthnet.doctors d ON d.id = a.doctor_id`

func scanAppointment(scan func(dest ...interface{}) error) (*Appointment, error) {
	var a Appointment
	var date string
	var notes sql.NullString
	var updatedAt sql.NullTime

	err := scan(
		&a.ID,
		&a.PatientID,
		&a.PatientName,
		&a.DoctorID,
		&a.DoctorName,
		&date,
		&a.Time,
		&a.Status,
		&notes,
		&a.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// dates scan as full timestamps through lib/pq; keep the date part
	if len(date) >= 10 {
		date = date[:10]
	}
	a.Date = date
	if notes.Valid {
		a.Notes = notes.String
	}
	if updatedAt.Valid {
		a.UpdatedAt = &updatedAt.Time
	}

	return &a, nil
}

// mapForeignKeyError turns a 23503 violation into the missing-person error
// named by the failing constraint.
func mapForeignKeyError(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code != "23503" {
		return nil
	}
	if strings.Contains(pqErr.Constraint, "patient") {
		return ErrPatientNotFound
	}
	if strings.Contains(pqErr.Constraint, "doctor") {
		return ErrDoctorNotFound
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, req AppointmentRequest) (*Appointment, error) {
	id := uuid.New().String()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO healthnet.appointments
		(id, patient_id, doctor_id, appointment_date, appointment_time, status, notes, created_at)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8)
	`, id, req.PatientID, req.DoctorID, req.Date, req.Time, StatusScheduled, req.Notes, time.Now())
	if err != nil {
		if mapped := mapForeignKeyError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to insert appointment: %w", err)
	}

	appointment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.publisher != nil {
		event := messaging.AppointmentEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentCreated),
			Data: messaging.AppointmentEventData{
				AppointmentID: appointment.ID,
				PatientID:     appointment.PatientID,
				DoctorID:      appointment.DoctorID,
				Date:          appointment.Date,
				Time:          appointment.Time,
				Status:        appointment.Status,
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventAppointmentCreated, event); err != nil {
			log.Printf("Warning: failed to publish appointment.created event: %v", err)
		}
	}

	return appointment, nil
}

// List returns one page of the schedule ordered by date then time. The search
// term matches patient and doctor names; patient and doctor filters narrow
// the set before searching.
func (r *Repository) List(ctx context.Context, f Filter, limit, offset int) ([]Appointment, int, error) {
	var conditions []string
	var args []interface{}

	if f.PatientID != "" {
		args = append(args, f.PatientID)
		conditions = append(conditions, fmt.Sprintf("a.patient_id = $%d", len(args)))
	}
	if f.DoctorID != "" {
		args = append(args, f.DoctorID)
		conditions = append(conditions, fmt.Sprintf("a.doctor_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(p.first_name ILIKE $%d OR p.last_name ILIKE $%d OR d.first_name ILIKE $%d OR d.last_name ILIKE $%d)", n, n, n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `
	SELECT COUNT(*)
	FROM healthnet.appointments a
	JOIN healthnet.patients p ON p.id = a.patient_id
	JOIN healthnet.doctors d ON d.id = a.doctor_id` + where

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	query := fmt.Sprintf(`%s%s
	ORDER BY a.appointment_date ASC, a.appointment_time ASC
	LIMIT $%d OFFSET $%d`, appointmentSelect, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, *a)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating appointments: %w", err)
	}

	return appointments, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	query := appointmentSelect + `
	WHERE a.id = $1`

	appointment, err := scanAppointment(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment: %w", err)
	}

	return appointment, nil
}

// Update replaces the appointment's booking fields. Status is untouched; it
// only moves through SetStatus.
func (r *Repository) Update(ctx context.Context, id string, req AppointmentRequest) (*Appointment, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE healthnet.appointments
		SET patient_id = $1, doctor_id = $2, appointment_date = $3::date,
		    appointment_time = $4, notes = $5, updated_at = $6
		WHERE id = $7
	`, req.PatientID, req.DoctorID, req.Date, req.Time, req.Notes, time.Now(), id)
	if err != nil {
		if mapped := mapForeignKeyError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrAppointmentNotFound
	}

	appointment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.publisher != nil {
		event := messaging.AppointmentEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentUpdated),
			Data: messaging.AppointmentEventData{
				AppointmentID: appointment.ID,
				PatientID:     appointment.PatientID,
				DoctorID:      appointment.DoctorID,
				Date:          appointment.Date,
				Time:          appointment.Time,
				Status:        appointment.Status,
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventAppointmentUpdated, event); err != nil {
			log.Printf("Warning: failed to publish appointment.updated event: %v", err)
		}
	}

	return appointment, nil
}

// SetStatus moves an appointment to a new status. The transition has already
// been checked against the old status by the service.
func (r *Repository) SetStatus(ctx context.Context, id, oldStatus, newStatus string) (*Appointment, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE healthnet.appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
	`, newStatus, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrAppointmentNotFound
	}

	appointment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.publisher != nil {
		event := messaging.AppointmentStatusChangedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentStatusChanged),
			Data: messaging.AppointmentStatusChangedData{
				AppointmentID: id,
				OldStatus:     oldStatus,
				NewStatus:     newStatus,
				ChangedAt:     time.Now().UTC(),
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventAppointmentStatusChanged, event); err != nil {
			log.Printf("Warning: failed to publish appointment.status_changed event: %v", err)
		}
	}

	return appointment, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM healthnet.appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

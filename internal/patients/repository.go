package patients

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

const patientColumns = `id, user_id, patient_id, first_name, last_name, date_of_birth, age, gender, phone, email, address, medical_history, emergency_contact, emergency_phone, created_at, updated_at`

func scanPatient(scan func(dest ...interface{}) error) (*Patient, error) {
	var p Patient
	var userID, dob, gender, phone, email, address, history, contact, contactPhone sql.NullString
	var age sql.NullInt64
	var updatedAt sql.NullTime

	err := scan(
		&p.ID,
		&userID,
		&p.PatientID,
		&p.FirstName,
		&p.LastName,
		&dob,
		&age,
		&gender,
		&phone,
		&email,
		&address,
		&history,
		&contact,
		&contactPhone,
		&p.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		p.UserID = &userID.String
	}
	if dob.Valid {
		// dates scan as full timestamps through lib/pq; keep the date part
		d := dob.String
		if len(d) >= 10 {
			d = d[:10]
		}
		p.DateOfBirth = &d
	}
	if age.Valid {
		a := int(age.Int64)
		p.Age = &a
	}
	if gender.Valid {
		p.Gender = gender.String
	}
	if phone.Valid {
		p.Phone = phone.String
	}
	if email.Valid {
		p.Email = email.String
	}
	if address.Valid {
		p.Address = address.String
	}
	if history.Valid {
		p.MedicalHistory = history.String
	}
	if contact.Valid {
		p.EmergencyContact = contact.String
	}
	if contactPhone.Valid {
		p.EmergencyPhone = contactPhone.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}

	return &p, nil
}

func (r *Repository) Create(ctx context.Context, req PatientRequest, age *int) (*Patient, error) {
	id := uuid.New().String()
	code := req.PatientID
	if code == "" {
		code = "PT-" + strings.ToUpper(uuid.New().String()[:8])
	}
	createdAt := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO healthnet.patients
		(id, patient_id, first_name, last_name, date_of_birth, age, gender, phone, email, address, medical_history, emergency_contact, emergency_phone, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::date, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13, $14)
		RETURNING %s
	`, patientColumns)

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query,
		id,
		code,
		req.FirstName,
		req.LastName,
		req.DateOfBirth,
		age,
		req.Gender,
		req.Phone,
		req.Email,
		req.Address,
		req.MedicalHistory,
		req.EmergencyContact,
		req.EmergencyPhone,
		createdAt,
	).Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}

	if r.publisher != nil {
		event := messaging.PersonEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventPatientCreated),
			Data: messaging.PersonEventData{
				RecordID:  patient.ID,
				FirstName: patient.FirstName,
				LastName:  patient.LastName,
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventPatientCreated, event); err != nil {
			log.Printf("Warning: failed to publish patient.created event: %v", err)
		}
	}

	return patient, nil
}

// List returns one page of patients plus the unpaginated total. The search
// term matches first name, last name, email and external patient code.
func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]Patient, int, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = `
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR patient_id ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM healthnet.patients` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM healthnet.patients%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, patientColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		p, err := scanPatient(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM healthnet.patients WHERE id = $1`, patientColumns)

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}

	return patient, nil
}

func (r *Repository) Update(ctx context.Context, id string, req PatientRequest, age *int) (*Patient, error) {
	query := fmt.Sprintf(`
		UPDATE healthnet.patients
		SET first_name = $1, last_name = $2, date_of_birth = NULLIF($3, '')::date, age = $4,
		    gender = NULLIF($5, ''), phone = $6, email = $7, address = $8,
		    medical_history = $9, emergency_contact = $10, emergency_phone = $11, updated_at = $12
		WHERE id = $13
		RETURNING %s
	`, patientColumns)

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query,
		req.FirstName,
		req.LastName,
		req.DateOfBirth,
		age,
		req.Gender,
		req.Phone,
		req.Email,
		req.Address,
		req.MedicalHistory,
		req.EmergencyContact,
		req.EmergencyPhone,
		time.Now(),
		id,
	).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	if r.publisher != nil {
		event := messaging.PersonEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventPatientUpdated),
			Data: messaging.PersonEventData{
				RecordID:  patient.ID,
				FirstName: patient.FirstName,
				LastName:  patient.LastName,
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventPatientUpdated, event); err != nil {
			log.Printf("Warning: failed to publish patient.updated event: %v", err)
		}
	}

	return patient, nil
}

// Delete removes a patient. Deletion is refused while appointment rows still
// reference the record; the ledger never loses its history to a registry
// delete.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM healthnet.patients WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPatientReferenced
		}
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPatientNotFound
	}

	if r.publisher != nil {
		event := messaging.PersonEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventPatientDeleted),
			Data:      messaging.PersonEventData{RecordID: id},
		}
		if err := r.publisher.Publish(ctx, messaging.EventPatientDeleted, event); err != nil {
			log.Printf("Warning: failed to publish patient.deleted event: %v", err)
		}
	}

	return nil
}

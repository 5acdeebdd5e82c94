package doctors

import (
	"context"
	"database/sql"
	"fmt"
	"log"
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

const doctorColumns = `id, user_id, first_name, last_name, specialization, phone, email, schedule, created_at, updated_at`

func scanDoctor(scan func(dest ...interface{}) error) (*Doctor, error) {
	var d Doctor
	var userID, phone, email, schedule sql.NullString
	var updatedAt sql.NullTime

	err := scan(
		&d.ID,
		&userID,
		&d.FirstName,
		&d.LastName,
		&d.Specialization,
		&phone,
		&email,
		&schedule,
		&d.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		d.UserID = &userID.String
	}
	if phone.Valid {
		d.Phone = phone.String
	}
	if email.Valid {
		d.Email = email.String
	}
	if schedule.Valid {
		d.Schedule = schedule.String
	}
	if updatedAt.Valid {
		d.UpdatedAt = &updatedAt.Time
	}

	return &d, nil
}

func (r *Repository) Create(ctx context.Context, req DoctorRequest) (*Doctor, error) {
	id := uuid.New().String()

	query := fmt.Sprintf(`
		INSERT INTO healthnet.doctors
		(id, first_name, last_name, specialization, phone, email, schedule, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, doctorColumns)

	doctor, err := scanDoctor(r.db.QueryRowContext(ctx, query,
		id,
		req.FirstName,
		req.LastName,
		req.Specialization,
		req.Phone,
		req.Email,
		req.Schedule,
		time.Now(),
	).Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to insert doctor: %w", err)
	}

	if r.publisher != nil {
		event := messaging.PersonEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventDoctorCreated),
			Data: messaging.PersonEventData{
				RecordID:  doctor.ID,
				FirstName: doctor.FirstName,
				LastName:  doctor.LastName,
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventDoctorCreated, event); err != nil {
			log.Printf("Warning: failed to publish doctor.created event: %v", err)
		}
	}

	return doctor, nil
}

// List returns one page of doctors plus the unpaginated total. The search term
// matches name, specialization and email.
func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]Doctor, int, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = `
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR specialization ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM healthnet.doctors` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count doctors: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM healthnet.doctors%s
		ORDER BY last_name ASC, first_name ASC
		LIMIT $%d OFFSET $%d
	`, doctorColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query doctors: %w", err)
	}
	defer rows.Close()

	var doctors []Doctor
	for rows.Next() {
		d, err := scanDoctor(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan doctor: %w", err)
		}
		doctors = append(doctors, *d)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating doctors: %w", err)
	}

	return doctors, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM healthnet.doctors WHERE id = $1`, doctorColumns)

	doctor, err := scanDoctor(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query doctor: %w", err)
	}

	return doctor, nil
}

func (r *Repository) Update(ctx context.Context, id string, req DoctorRequest) (*Doctor, error) {
	query := fmt.Sprintf(`
		UPDATE healthnet.doctors
		SET first_name = $1, last_name = $2, specialization = $3, phone = $4,
		    email = $5, schedule = $6, updated_at = $7
		WHERE id = $8
		RETURNING %s
	`, doctorColumns)

	doctor, err := scanDoctor(r.db.QueryRowContext(ctx, query,
		req.FirstName,
		req.LastName,
		req.Specialization,
		req.Phone,
		req.Email,
		req.Schedule,
		time.Now(),
		id,
	).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	if r.publisher != nil {
		event := messaging.PersonEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventDoctorUpdated),
			Data: messaging.PersonEventData{
				RecordID:  doctor.ID,
				FirstName: doctor.FirstName,
				LastName:  doctor.LastName,
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventDoctorUpdated, event); err != nil {
			log.Printf("Warning: failed to publish doctor.updated event: %v", err)
		}
	}

	return doctor, nil
}

// Delete removes a doctor. Deletion is refused while appointment rows still
// reference the record.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM healthnet.doctors WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrDoctorReferenced
		}
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrDoctorNotFound
	}

	if r.publisher != nil {
		event := messaging.PersonEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventDoctorDeleted),
			Data:      messaging.PersonEventData{RecordID: id},
		}
		if err := r.publisher.Publish(ctx, messaging.EventDoctorDeleted, event); err != nil {
			log.Printf("Warning: failed to publish doctor.deleted event: %v", err)
		}
	}

	return nil
}

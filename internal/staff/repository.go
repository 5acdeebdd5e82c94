package staff

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

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

const staffColumns = `id, user_id, first_name, last_name, role, department, phone, email, hire_date, salary, created_at, updated_at`

func scanStaff(scan func(dest ...interface{}) error) (*StaffMember, error) {
	var s StaffMember
	var userID, department, phone, email, hireDate sql.NullString
	var salary sql.NullFloat64
	var updatedAt sql.NullTime

	err := scan(
		&s.ID,
		&userID,
		&s.FirstName,
		&s.LastName,
		&s.Role,
		&department,
		&phone,
		&email,
		&hireDate,
		&salary,
		&s.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		s.UserID = &userID.String
	}
	if department.Valid {
		s.Department = department.String
	}
	if phone.Valid {
		s.Phone = phone.String
	}
	if email.Valid {
		s.Email = email.String
	}
	if hireDate.Valid {
		d := hireDate.String
		if len(d) >= 10 {
			d = d[:10]
		}
		s.HireDate = &d
	}
	if salary.Valid {
		s.Salary = &salary.Float64
	}
	if updatedAt.Valid {
		s.UpdatedAt = &updatedAt.Time
	}

	return &s, nil
}

func (r *Repository) Create(ctx context.Context, req StaffRequest) (*StaffMember, error) {
	id := uuid.New().String()

	query := fmt.Sprintf(`
		INSERT INTO healthnet.staff
		(id, first_name, last_name, role, department, phone, email, hire_date, salary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::date, $9, $10)
		RETURNING %s
	`, staffColumns)

	member, err := scanStaff(r.db.QueryRowContext(ctx, query,
		id,
		req.FirstName,
		req.LastName,
		req.Role,
		req.Department,
		req.Phone,
		req.Email,
		req.HireDate,
		req.Salary,
		time.Now(),
	).Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to insert staff member: %w", err)
	}

	if r.publisher != nil {
		event := messaging.PersonEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventStaffCreated),
			Data: messaging.PersonEventData{
				RecordID:  member.ID,
				FirstName: member.FirstName,
				LastName:  member.LastName,
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventStaffCreated, event); err != nil {
			log.Printf("Warning: failed to publish staff.created event: %v", err)
		}
	}

	return member, nil
}

// List returns one page of staff members plus the unpaginated total. The
// search term matches name, role, department and email.
func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]StaffMember, int, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = `
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR role ILIKE $1 OR department ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM healthnet.staff` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count staff: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM healthnet.staff%s
		ORDER BY last_name ASC, first_name ASC
		LIMIT $%d OFFSET $%d
	`, staffColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var members []StaffMember
	for rows.Next() {
		s, err := scanStaff(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan staff member: %w", err)
		}
		members = append(members, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating staff: %w", err)
	}

	return members, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*StaffMember, error) {
	query := fmt.Sprintf(`SELECT %s FROM healthnet.staff WHERE id = $1`, staffColumns)

	member, err := scanStaff(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query staff member: %w", err)
	}

	return member, nil
}

func (r *Repository) Update(ctx context.Context, id string, req StaffRequest) (*StaffMember, error) {
	query := fmt.Sprintf(`
		UPDATE healthnet.staff
		SET first_name = $1, last_name = $2, role = $3, department = $4, phone = $5,
		    email = $6, hire_date = NULLIF($7, '')::date, salary = $8, updated_at = $9
		WHERE id = $10
		RETURNING %s
	`, staffColumns)

	member, err := scanStaff(r.db.QueryRowContext(ctx, query,
		req.FirstName,
		req.LastName,
		req.Role,
		req.Department,
		req.Phone,
		req.Email,
		req.HireDate,
		req.Salary,
		time.Now(),
		id,
	).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}

	if r.publisher != nil {
		event := messaging.PersonEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventStaffUpdated),
			Data: messaging.PersonEventData{
				RecordID:  member.ID,
				FirstName: member.FirstName,
				LastName:  member.LastName,
			},
		}
		if err := r.publisher.Publish(ctx, messaging.EventStaffUpdated, event); err != nil {
			log.Printf("Warning: failed to publish staff.updated event: %v", err)
		}
	}

	return member, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM healthnet.staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrStaffNotFound
	}

	if r.publisher != nil {
		event := messaging.PersonEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventStaffDeleted),
			Data:      messaging.PersonEventData{RecordID: id},
		}
		if err := r.publisher.Publish(ctx, messaging.EventStaffDeleted, event); err != nil {
			log.Printf("Warning: failed to publish staff.deleted event: %v", err)
		}
	}

	return nil
}

package identity

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

func (r *Repository) Create(ctx context.Context, user *User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO healthnet.users (id, username, password_hash, role, full_name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.FullName,
		user.Email,
		user.Phone,
		user.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("Created user: %s (role: %s)", user.Username, user.Role)

	// Publish user.created event
	if r.publisher != nil {
		event := messaging.UserCreatedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventUserCreated),
			Data: messaging.UserCreatedData{
				UserID:    user.ID,
				Username:  user.Username,
				Role:      user.Role,
				CreatedAt: user.CreatedAt,
			},
		}

		if err := r.publisher.Publish(ctx, messaging.EventUserCreated, event); err != nil {
			log.Printf("Warning: failed to publish user.created event: %v", err)
		}
	}

	return nil
}

// CreateLinked inserts the user and attaches it to its person record in a
// single transaction. A missing or already-linked person record rolls the
// insert back, so a failed signup leaves no account behind.
func (r *Repository) CreateLinked(ctx context.Context, user *User, linkedID string) error {
	table := linkTableForRole(user.Role)
	if table == "" {
		return ErrInvalidRole
	}

	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO healthnet.users (id, username, password_hash, role, full_name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.FullName,
		user.Email,
		user.Phone,
		user.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	linkQuery := fmt.Sprintf(`
		UPDATE healthnet.%s
		SET user_id = $1, updated_at = $2
		WHERE id = $3 AND user_id IS NULL
	`, table)

	result, err := tx.ExecContext(ctx, linkQuery, user.ID, time.Now(), linkedID)
	if err != nil {
		return fmt.Errorf("failed to link %s record: %w", table, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrLinkedRecordNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user creation: %w", err)
	}

	log.Printf("Created user: %s (role: %s, linked %s record: %s)", user.Username, user.Role, table, linkedID)

	if r.publisher != nil {
		event := messaging.UserCreatedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventUserCreated),
			Data: messaging.UserCreatedData{
				UserID:    user.ID,
				Username:  user.Username,
				Role:      user.Role,
				CreatedAt: user.CreatedAt,
			},
		}

		if err := r.publisher.Publish(ctx, messaging.EventUserCreated, event); err != nil {
			log.Printf("Warning: failed to publish user.created event: %v", err)
		}
	}

	return nil
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, password_hash, role, full_name, email, phone, created_at, updated_at
		FROM healthnet.users
		WHERE username = $1
	`

	user := &User{}
	var email sql.NullString
	var phone sql.NullString
	var updatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.FullName,
		&email,
		&phone,
		&user.CreatedAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if email.Valid {
		user.Email = email.String
	}
	if phone.Valid {
		user.Phone = phone.String
	}
	if updatedAt.Valid {
		user.UpdatedAt = &updatedAt.Time
	}

	return user, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, username, password_hash, role, full_name, email, phone, created_at, updated_at
		FROM healthnet.users
		WHERE id = $1
	`

	user := &User{}
	var email sql.NullString
	var phone sql.NullString
	var updatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.FullName,
		&email,
		&phone,
		&user.CreatedAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if email.Valid {
		user.Email = email.String
	}
	if phone.Valid {
		user.Phone = phone.String
	}
	if updatedAt.Valid {
		user.UpdatedAt = &updatedAt.Time
	}

	return user, nil
}

// FindLinkedID resolves the patient or doctor record owned by a user.
// Returns an empty string when the role carries no linked record or none is
// attached yet.
func (r *Repository) FindLinkedID(ctx context.Context, role, userID string) (string, error) {
	table := linkTableForRole(role)
	if table == "" {
		return "", nil
	}

	query := fmt.Sprintf(`SELECT id FROM healthnet.%s WHERE user_id = $1`, table)

	var linkedID string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&linkedID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve linked record: %w", err)
	}

	return linkedID, nil
}

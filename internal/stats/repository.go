package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Collect runs the four dashboard counts. Appointments are counted for the
// database's current date, matching what the schedule shows for today.
func (r *Repository) Collect(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{GeneratedAt: time.Now().UTC()}

	queries := map[*int]string{
		&snapshot.Patients:          `SELECT COUNT(*) FROM healthnet.patients`,
		&snapshot.Doctors:           `SELECT COUNT(*) FROM healthnet.doctors`,
		&snapshot.Staff:             `SELECT COUNT(*) FROM healthnet.staff`,
		&snapshot.AppointmentsToday: `SELECT COUNT(*) FROM healthnet.appointments WHERE appointment_date = CURRENT_DATE`,
	}

	for dest, query := range queries {
		if err := r.db.QueryRowContext(ctx, query).Scan(dest); err != nil {
			return nil, fmt.Errorf("failed to collect stats: %w", err)
		}
	}

	return snapshot, nil
}

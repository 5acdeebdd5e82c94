package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one row of the activity feed.
type Entry struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail,omitempty"`
}

const defaultFeedSize = 50

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, actor, action, detail string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO healthnet.activity_log (id, occurred_at, actor, action, detail)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New().String(), time.Now(), actor, action, detail)
	if err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}
	return nil
}

func (r *Repository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, occurred_at, actor, action, detail
		FROM healthnet.activity_log
		ORDER BY occurred_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &e.OccurredAt, &e.Actor, &e.Action, &detail); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		if detail.Valid {
			e.Detail = detail.String
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity: %w", err)
	}

	return entries, nil
}

// StoreInterface defines the contract for the activity store.
type StoreInterface interface {
	Insert(ctx context.Context, actor, action, detail string) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

var _ StoreInterface = (*Repository)(nil)

// OperationRecorder counts entity write operations. Actions arrive as
// "entity.operation" pairs, the same names the feed stores.
type OperationRecorder interface {
	RecordPatientOperation(ctx context.Context, operation string)
	RecordDoctorOperation(ctx context.Context, operation string)
	RecordStaffOperation(ctx context.Context, operation string)
	RecordAppointmentOperation(ctx context.Context, operation string)
	RecordUserOperation(ctx context.Context, operation string)
}

// Service records and serves the activity feed. Recording is best effort: a
// failed insert must never fail the write that triggered it, so errors are
// logged and swallowed.
type Service struct {
	store   StoreInterface
	metrics OperationRecorder
}

func NewService(store StoreInterface) *Service {
	return &Service{store: store}
}

// NewServiceWithMetrics additionally counts each recorded operation.
func NewServiceWithMetrics(store StoreInterface, metrics OperationRecorder) *Service {
	return &Service{store: store, metrics: metrics}
}

func (s *Service) Record(ctx context.Context, actor, action, detail string) {
	if err := s.store.Insert(ctx, actor, action, detail); err != nil {
		log.Printf("[ERROR] Failed to record activity %s by %s: %v", action, actor, err)
	}

	if s.metrics != nil {
		if entity, op, ok := strings.Cut(action, "."); ok {
			switch entity {
			case "patient":
				s.metrics.RecordPatientOperation(ctx, op)
			case "doctor":
				s.metrics.RecordDoctorOperation(ctx, op)
			case "staff":
				s.metrics.RecordStaffOperation(ctx, op)
			case "appointment":
				s.metrics.RecordAppointmentOperation(ctx, op)
			case "user":
				s.metrics.RecordUserOperation(ctx, op)
			}
		}
	}
}

func (s *Service) Recent(ctx context.Context) ([]Entry, error) {
	entries, err := s.store.Recent(ctx, defaultFeedSize)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type FeedResponse struct {
	Success bool    `json:"success"`
	Entries []Entry `json:"entries"`
}

func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Recent(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "fetch_failed",
			"message": err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FeedResponse{
		Success: true,
		Entries: entries,
	})
}

package stats

import (
	"context"
	"encoding/json"
	"net/http"
)

// SnapshotProvider is what the handler needs from the service.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

var _ SnapshotProvider = (*Service)(nil)

type Handler struct {
	service SnapshotProvider
}

func NewHandler(service SnapshotProvider) *Handler {
	return &Handler{service: service}
}

type StatsResponse struct {
	Success bool      `json:"success"`
	Stats   *Snapshot `json:"stats"`
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Snapshot(r.Context())
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
	json.NewEncoder(w).Encode(StatsResponse{
		Success: true,
		Stats:   snapshot,
	})
}

package activity

import (
	"encoding/json"
	"net/http"
	"time"
)

type EntryDTO struct {
	Type       EntryType `json:"type"`
	Message    string    `json:"message"`
	Reference  string    `json:"reference,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Handler struct {
	activityService ActivityService
}

func NewHandler(activityService ActivityService) *Handler {
	return &Handler{activityService}
}

func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entries, err := h.activityService.Recent(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, EntryDTO{
			Type:       entry.Type,
			Message:    entry.Message,
			Reference:  entry.Reference,
			OccurredAt: entry.OccurredAt,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/mtgdump/pkg/domain/interfaces"
)

// StatsHandler serves dump directory statistics
type StatsHandler struct {
	statsUC interfaces.StatsUseCase
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsUC interfaces.StatsUseCase) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
	}
}

// Handle responds with the current dump statistics
func (h *StatsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	stats, err := h.statsUC.Stats(ctx)
	if err != nil {
		logger.Error("Failed to compute dump stats", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		logger.Error("Failed to encode stats response", "error", err)
	}
}

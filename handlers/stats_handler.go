package handlers

import (
	"net/http"

	"github.com/aharonidan/bopdial/middleware"
	"github.com/aharonidan/bopdial/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) OwnOutcomes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	counts, err := h.statsService.CountOutcomes(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"outcomes": counts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/aharonidan/bopdial/middleware"
	"github.com/aharonidan/bopdial/services"
)

type BetHandler struct {
	betService services.BetService
}

func NewBetHandler(betService services.BetService) *BetHandler {
	return &BetHandler{betService: betService}
}

// Place creates or updates the caller's bet on a match while the match is
// still editable.
func (h *BetHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		MatchID    int `json:"match_id"`
		PredictedA int `json:"predicted_a"`
		PredictedB int `json:"predicted_b"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bet, err := h.betService.Place(r.Context(), userID, input.MatchID, input.PredictedA, input.PredictedB)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bet": bet}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BetHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	bets, err := h.betService.ListByUser(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bets": bets}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

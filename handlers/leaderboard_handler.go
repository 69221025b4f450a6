package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/aharonidan/bopdial/middleware"
	"github.com/aharonidan/bopdial/services"
)

type LeaderboardHandler struct {
	leaderboard services.LeaderboardService
	userService services.UserService
}

func NewLeaderboardHandler(leaderboard services.LeaderboardService, userService services.UserService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard: leaderboard,
		userService: userService,
	}
}

// DailyScore returns the caller's score for a given day. Without a date
// query parameter the service resolves "today" through its own clock.
func (h *LeaderboardHandler) DailyScore(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			badRequestResponse(w, r, errors.New("date must be formatted as YYYY-MM-DD"))
			return
		}
	}

	score, err := h.leaderboard.DailyScore(r.Context(), userID, date)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"score": score}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeaderboardHandler) BestDay(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	best, err := h.leaderboard.BestDay(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"best_day": best}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Today reports the caller's standing for the current day. The king and
// loser verdicts are null until every match scheduled today is played.
func (h *LeaderboardHandler) Today(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	noMatches, err := h.leaderboard.NoMatchesToday(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	score, err := h.leaderboard.DailyScore(r.Context(), userID, time.Time{})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	king, err := h.leaderboard.DailyKing(r.Context(), user)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	loser, err := h.leaderboard.DailyLoser(r.Context(), user)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"no_matches_today": noMatches,
		"score":            score,
		"daily_king":       king,
		"daily_loser":      loser,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

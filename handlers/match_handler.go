package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/pool-league/models"
	"github.com/Dosada05/pool-league/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func matchIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "matchID"))
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	seasonID, err := seasonIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	var phase *models.MatchPhase
	if p := r.URL.Query().Get("phase"); p != "" {
		parsed := models.MatchPhase(p)
		phase = &parsed
	}

	matches, err := h.matchService.ListMatches(r.Context(), seasonID, phase)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type submitScoreRequest struct {
	Winner     string `json:"winner"`
	TeamAScore *int   `json:"team_a_score"`
	TeamBScore *int   `json:"team_b_score"`
}

func (h *MatchHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	var req submitScoreRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.SubmitMatchScore(r.Context(), services.SubmitScoreInput{
		MatchID:    id,
		WinnerName: req.Winner,
		TeamAScore: req.TeamAScore,
		TeamBScore: req.TeamBScore,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type updateScheduleRequest struct {
	ScheduledAt *string `json:"scheduled_at"`
	Location    *string `json:"location"`
}

func (h *MatchHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	var req updateScheduleRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var scheduledAt *time.Time
	if req.ScheduledAt != nil && *req.ScheduledAt != "" {
		parsed, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			mapServiceErrorToHTTP(w, r, services.ErrInvalidScheduleDate)
			return
		}
		scheduledAt = &parsed
	}

	match, err := h.matchService.UpdateMatchSchedule(r.Context(), id, scheduledAt, req.Location)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// FillRandomResults records random winners for every open regular match.
// Development helper.
func (h *MatchHandler) FillRandomResults(w http.ResponseWriter, r *http.Request) {
	seasonID, err := seasonIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	result, err := h.matchService.FillRandomResults(r.Context(), seasonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

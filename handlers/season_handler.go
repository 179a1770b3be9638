package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/pool-league/models"
	"github.com/Dosada05/pool-league/services"
	"github.com/go-chi/chi/v5"
)

type SeasonHandler struct {
	seasonService   services.SeasonService
	scheduleService services.ScheduleService
	standings       services.StandingsService
	playoffs        services.PlayoffService
}

func NewSeasonHandler(
	seasonService services.SeasonService,
	scheduleService services.ScheduleService,
	standings services.StandingsService,
	playoffs services.PlayoffService,
) *SeasonHandler {
	return &SeasonHandler{
		seasonService:   seasonService,
		scheduleService: scheduleService,
		standings:       standings,
		playoffs:        playoffs,
	}
}

func seasonIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "seasonID"))
}

// GetCurrentSeason resolves (or creates) the season for today. The clock
// is read here, once, at the edge.
func (h *SeasonHandler) GetCurrentSeason(w http.ResponseWriter, r *http.Request) {
	desc := models.CurrentSeasonDescriptor(time.Now())
	season, err := h.seasonService.GetOrCreateSeason(r.Context(), desc)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"season": season,
		"label":  season.Label(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) GetSeason(w http.ResponseWriter, r *http.Request) {
	id, err := seasonIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	season, err := h.seasonService.GetSeason(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season, "label": season.Label()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.seasonService.ListSeasons(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"seasons": seasons}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := seasonIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	result, err := h.scheduleService.GenerateRegularSchedule(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Created == 0 {
		status = http.StatusOK
	}
	if err := writeJSON(w, status, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	id, err := seasonIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	standings, err := h.standings.ComputeStandings(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	id, err := seasonIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	bracket, err := h.playoffs.GetBracket(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	id, err := seasonIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}
	seriesKey := chi.URLParam(r, "seriesKey")

	state, err := h.playoffs.GetSeriesState(r.Context(), id, seriesKey)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"series": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) ForceStartPlayoffs(w http.ResponseWriter, r *http.Request) {
	id, err := seasonIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	result, err := h.playoffs.ForceStartPlayoffs(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	if err := writeJSON(w, status, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

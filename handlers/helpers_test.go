package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/pool-league/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	type payload struct {
		Winner string `json:"winner"`
	}

	newRequest := func(body string) (*httptest.ResponseRecorder, *http.Request) {
		return httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	}

	t.Run("valid body", func(t *testing.T) {
		w, r := newRequest(`{"winner": "Breakers"}`)
		var dst payload
		require.NoError(t, readJSON(w, r, &dst))
		assert.Equal(t, "Breakers", dst.Winner)
	})

	t.Run("empty body", func(t *testing.T) {
		w, r := newRequest(``)
		var dst payload
		err := readJSON(w, r, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be empty")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		w, r := newRequest(`{"winner": `)
		var dst payload
		assert.Error(t, readJSON(w, r, &dst))
	})

	t.Run("unknown field", func(t *testing.T) {
		w, r := newRequest(`{"champion": "Breakers"}`)
		var dst payload
		err := readJSON(w, r, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown key")
	})

	t.Run("wrong type", func(t *testing.T) {
		w, r := newRequest(`{"winner": 8}`)
		var dst payload
		err := readJSON(w, r, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incorrect JSON type")
	})

	t.Run("trailing value", func(t *testing.T) {
		w, r := newRequest(`{"winner": "a"}{"winner": "b"}`)
		var dst payload
		err := readJSON(w, r, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "single JSON value")
	})
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	err := writeJSON(w, http.StatusCreated, jsonResponse{"created": 28}, http.Header{"X-Request-Id": []string{"abc"}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "abc", w.Header().Get("X-Request-Id"))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Equal(t, 28, decoded["created"])
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"season not found", services.ErrSeasonNotFound, http.StatusNotFound},
		{"match not found", services.ErrMatchNotFound, http.StatusNotFound},
		{"series not found", services.ErrSeriesNotFound, http.StatusNotFound},
		{"name taken", services.ErrTeamNameTaken, http.StatusConflict},
		{"player rostered", services.ErrPlayerAlreadyOnTeam, http.StatusConflict},
		{"signup closed", services.ErrSignupClosed, http.StatusConflict},
		{"already complete", services.ErrMatchAlreadyComplete, http.StatusConflict},
		{"series decided", services.ErrSeriesAlreadyDecided, http.StatusConflict},
		{"tied result", services.ErrTiedResult, http.StatusBadRequest},
		{"series tied", services.ErrSeriesTied, http.StatusBadRequest},
		{"negative score", services.ErrNegativeScore, http.StatusBadRequest},
		{"field too small", services.ErrPlayoffFieldTooSmall, http.StatusBadRequest},
		{"bad schedule date", services.ErrInvalidScheduleDate, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			mapServiceErrorToHTTP(w, r, tc.err)
			assert.Equal(t, tc.expected, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Contains(t, body, "error")
		})
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ticketscan/ticketscan/internal/models"
	"github.com/ticketscan/ticketscan/internal/savedsearch"
)

func newSavedHandler() *SavedSearchHandler {
	return NewSavedSearchHandler(savedsearch.NewMemoryStore(), zap.NewNop())
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestSavedSearch_SaveAndList(t *testing.T) {
	h := newSavedHandler()
	e := echo.New()

	body := `{
		"params": {
			"origin": "NRT",
			"destinations": ["BKK", "ICN"],
			"departureDate": "2026-10-01",
			"returnDate": "2026-10-08",
			"adults": 2,
			"infants": 1
		},
		"results": [
			{"destination": "BKK", "cheapestPrice": 52000, "airline": "Thai Airways", "flightCount": 12},
			{"destination": "ICN", "cheapestPrice": null, "airline": null, "flightCount": 0}
		]
	}`

	rec := httptest.NewRecorder()
	require.NoError(t, h.Save(e.NewContext(jsonRequest(http.MethodPost, "/api/v1/saved", body), rec)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved models.SavedSearch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, []string{"BKK", "ICN"}, saved.Params.Destinations)

	rec = httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/saved", nil), rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.SavedSearch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, saved.ID, listed[0].ID)
}

func TestSavedSearch_SaveRequiresDestinations(t *testing.T) {
	h := newSavedHandler()
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.Save(e.NewContext(jsonRequest(http.MethodPost, "/api/v1/saved", `{"params": {}}`), rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSavedSearch_DeleteAndUpdateNote(t *testing.T) {
	store := savedsearch.NewMemoryStore()
	h := NewSavedSearchHandler(store, zap.NewNop())
	e := echo.New()

	saved, err := store.Save(httptest.NewRequest(http.MethodGet, "/", nil).Context(), models.SavedSearch{
		Params: models.SavedSearchParams{Destinations: []string{"BKK"}},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/api/v1/saved/"+saved.ID+"/note", `{"note": "family trip"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues(saved.ID)
	require.NoError(t, h.UpdateNote(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(jsonRequest(http.MethodPatch, "/api/v1/saved/missing/note", `{"note": "x"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	require.NoError(t, h.UpdateNote(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/v1/saved/"+saved.ID, nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(saved.ID)
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailwatch/trailwatch/internal/repository"
)

// request builds an echo context plus recorder around an HTTP request.
func request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func newTrailHandler(t *testing.T) (*TrailHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewTrailHandler(repository.NewTrailRepo(db), repository.NewFavoriteRepo(db))
	return h, mock, func() { db.Close() }
}

func TestTrailListRejectsInvalidDifficulty(t *testing.T) {
	h, mock, done := newTrailHandler(t)
	defer done()

	c, rec := request(http.MethodGet, "/api/trails?difficulty=impossible", "")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])
	assert.NotEmpty(t, body["details"])
	assert.NoError(t, mock.ExpectationsWereMet()) // rejected before any query
}

func TestTrailListRejectsNonPositiveMaxLength(t *testing.T) {
	h, _, done := newTrailHandler(t)
	defer done()

	c, rec := request(http.MethodGet, "/api/trails?maxLength=-2", "")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", decodeBody(t, rec)["message"])
}

func TestTrailListClampsLimit(t *testing.T) {
	h, mock, done := newTrailHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trails t`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))
	// limit=999 must clamp to 50 before it reaches the database.
	mock.ExpectQuery(`LIMIT \? OFFSET \?`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "difficulty", "length_km", "elevation_gain_m",
			"estimated_time_hours", "location", "image_url", "created_at", "updated_at",
			"congestion_level", "traffic_updated_at",
		}))

	c, rec := request(http.MethodGet, "/api/trails?limit=999", "")
	require.NoError(t, h.List(c))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 120, body["total"])
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 3, body["totalPages"]) // ceil(120/50)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrailGetByIDRejectsBadParam(t *testing.T) {
	h, _, done := newTrailHandler(t)
	defer done()

	c, rec := request(http.MethodGet, "/api/trails/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.GetByID(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", decodeBody(t, rec)["message"])
}

func TestTrailGetByIDNotFound(t *testing.T) {
	h, mock, done := newTrailHandler(t)
	defer done()

	mock.ExpectQuery(`LEFT JOIN traffic_reports`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := request(http.MethodGet, "/api/trails/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.GetByID(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Trail with ID 7 not found", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrailCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"difficulty":"easy"}`},
		{"bad difficulty", `{"name":"X","difficulty":"vertical"}`},
		{"length out of range", `{"name":"X","length_km":1000}`},
		{"negative elevation", `{"name":"X","elevation_gain_m":-5}`},
		{"time out of range", `{"name":"X","estimated_time_hours":0.01}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, done := newTrailHandler(t)
			defer done()

			c, rec := request(http.MethodPost, "/api/trails", tt.body)
			require.NoError(t, h.Create(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Validation failed", body["message"])
		})
	}
}

func TestTrailUpdateUnknownTrail(t *testing.T) {
	h, mock, done := newTrailHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT 1 FROM trails WHERE id=\?`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	c, rec := request(http.MethodPut, "/api/trails/404", `{"name":"New name"}`)
	c.SetParamNames("id")
	c.SetParamValues("404")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Trail with ID 404 not found", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailwatch/trailwatch/internal/repository"
)

func newUserHandler(t *testing.T) (*UserHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewUserHandler(repository.NewUserRepo(db), repository.NewFavoriteRepo(db))
	return h, mock, func() { db.Close() }
}

// asUser injects the authenticated identity the way JWTAuth does.
func asUser(c echo.Context, id uint64) {
	c.Set("user_id", id)
}

func TestUpdateProfileValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"name too short", `{"name":"x"}`},
		{"malformed email", `{"email":"not-an-email"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, done := newUserHandler(t)
			defer done()

			c, rec := request(http.MethodPut, "/api/users/profile", tt.body)
			asUser(c, 5)
			require.NoError(t, h.UpdateProfile(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Validation failed", decodeBody(t, rec)["message"])
		})
	}
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT 1 FROM users WHERE email=\? AND id<>\?`).
		WithArgs("taken@example.com", 5).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	c, rec := request(http.MethodPut, "/api/users/profile", `{"email":"taken@example.com"}`)
	asUser(c, 5)
	require.NoError(t, h.UpdateProfile(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already in use", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFavorite(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectExec(`INSERT INTO user_favorites`).
		WithArgs(5, 42).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT id, user_id, trail_id, created_at FROM user_favorites`).
		WithArgs(5, 42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "trail_id", "created_at"}).
			AddRow(1, 5, 42, time.Now()))

	c, rec := request(http.MethodPost, "/api/users/favorites/42", "")
	asUser(c, 5)
	c.SetParamNames("trailId")
	c.SetParamValues("42")
	require.NoError(t, h.AddFavorite(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Trail added to favorites", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFavoriteAbsentIsNoOp(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectExec(`DELETE FROM user_favorites`).
		WithArgs(5, 42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := request(http.MethodDelete, "/api/users/favorites/42", "")
	asUser(c, 5)
	c.SetParamNames("trailId")
	c.SetParamValues("42")
	require.NoError(t, h.RemoveFavorite(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Trail removed from favorites", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckFavorite(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT 1 FROM user_favorites WHERE user_id=\? AND trail_id=\?`).
		WithArgs(5, 42).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	c, rec := request(http.MethodGet, "/api/users/favorites/42", "")
	asUser(c, 5)
	c.SetParamNames("trailId")
	c.SetParamValues("42")
	require.NoError(t, h.CheckFavorite(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["is_favorited"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

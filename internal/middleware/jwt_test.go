package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailwatch/trailwatch/internal/model"
	"github.com/trailwatch/trailwatch/internal/utils"
)

const testSecret = "test-secret"

func invoke(mw echo.MiddlewareFunc, authHeader string) (echo.Context, *httptest.ResponseRecorder, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	_ = mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})(c)
	return c, rec, reached
}

func signToken(t *testing.T) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, model.User{ID: 7, Email: "a@b.c", Name: "A"}, 1)
	require.NoError(t, err)
	return tok.Token
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	_, rec, reached := invoke(JWTAuth(testSecret), "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided")
}

func TestJWTAuthRejectsBadToken(t *testing.T) {
	_, rec, reached := invoke(JWTAuth(testSecret), "Bearer garbage")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestJWTAuthInjectsIdentity(t *testing.T) {
	c, rec, reached := invoke(JWTAuth(testSecret), "Bearer "+signToken(t))
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)

	id, ok := UserID(c)
	require.True(t, ok)
	assert.Equal(t, uint64(7), id)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	c, rec, reached := invoke(OptionalAuth(testSecret), "")
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, ok := UserID(c)
	assert.False(t, ok)
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	c, _, reached := invoke(OptionalAuth(testSecret), "Bearer garbage")
	assert.True(t, reached)

	_, ok := UserID(c)
	assert.False(t, ok)
}

func TestOptionalAuthAttachesIdentityWhenPresent(t *testing.T) {
	c, _, reached := invoke(OptionalAuth(testSecret), "Bearer "+signToken(t))
	assert.True(t, reached)

	id, ok := UserID(c)
	require.True(t, ok)
	assert.Equal(t, uint64(7), id)
}

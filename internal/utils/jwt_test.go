package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailwatch/trailwatch/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	u := model.User{ID: 42, Email: "hiker@example.com", Name: "Hiker"}

	tok, err := NewAccessToken("secret", u, 24)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), tok.Exp, time.Minute)

	claims, err := ParseAccessToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.ID)
	assert.Equal(t, "hiker@example.com", claims.Email)
	assert.Equal(t, "Hiker", claims.Name)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	u := model.User{ID: 1, Email: "a@b.c", Name: "A"}
	tok, err := NewAccessToken("secret", u, 1)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	u := model.User{ID: 1, Email: "a@b.c", Name: "A"}
	tok, err := NewAccessToken("secret", u, -1) // already expired
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	_, err := ParseAccessToken("secret", "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

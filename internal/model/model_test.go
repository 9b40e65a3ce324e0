package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDifficulty(t *testing.T) {
	for _, d := range []string{DifficultyEasy, DifficultyModerate, DifficultyHard, DifficultyExpert} {
		assert.True(t, ValidDifficulty(d), d)
	}
	assert.False(t, ValidDifficulty(""))
	assert.False(t, ValidDifficulty("vertical"))
	assert.False(t, ValidDifficulty("EASY"))
}

func TestCongestionLabel(t *testing.T) {
	assert.Equal(t, "Very Low", CongestionLabel(1))
	assert.Equal(t, "Low", CongestionLabel(2))
	assert.Equal(t, "Moderate", CongestionLabel(3))
	assert.Equal(t, "High", CongestionLabel(4))
	assert.Equal(t, "Very High", CongestionLabel(5))
	assert.Equal(t, "Unknown", CongestionLabel(0))
	assert.Equal(t, "Unknown", CongestionLabel(6))
}

func TestUserPublicOmitsPasswordHash(t *testing.T) {
	u := User{ID: 1, Email: "a@b.c", Name: "A", PasswordHash: "bcrypt-stuff"}
	pub := u.Public()
	assert.Equal(t, u.ID, pub.ID)
	assert.Equal(t, u.Email, pub.Email)
	assert.Equal(t, u.Name, pub.Name)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailCreateStoresNullForOmittedNumerics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	// Omitted length/elevation/time must reach the database as NULL, not
	// as zero values outside their documented ranges.
	mock.ExpectExec(`INSERT INTO trails`).
		WithArgs("Ridge Walk", nil, "moderate", nil, nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(`INSERT INTO traffic_reports \(trail_id, congestion_level\) VALUES \(\?, 1\)`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`FROM trails WHERE id=\?`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "difficulty", "length_km", "elevation_gain_m",
			"estimated_time_hours", "location", "image_url", "created_at", "updated_at",
		}).AddRow(5, "Ridge Walk", nil, "moderate", nil, nil, nil, nil, nil, now, now))

	repo := NewTrailRepo(db)
	trail, err := repo.Create(context.Background(), NewTrail{Name: "Ridge Walk", Difficulty: "moderate"})
	require.NoError(t, err)

	assert.Equal(t, uint64(5), trail.ID)
	assert.Nil(t, trail.LengthKM)
	assert.Nil(t, trail.ElevationGainM)
	assert.Nil(t, trail.EstimatedTimeHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrailCreateForwardsProvidedNumerics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	length := 12.5
	elevation := 400
	hours := 5.0
	now := time.Now()

	mock.ExpectExec(`INSERT INTO trails`).
		WithArgs("Eagle Peak", nil, "hard", 12.5, 400, 5.0, nil, nil).
		WillReturnResult(sqlmock.NewResult(6, 1))
	mock.ExpectExec(`INSERT INTO traffic_reports`).
		WithArgs(6).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery(`FROM trails WHERE id=\?`).
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "difficulty", "length_km", "elevation_gain_m",
			"estimated_time_hours", "location", "image_url", "created_at", "updated_at",
		}).AddRow(6, "Eagle Peak", nil, "hard", 12.5, 400, 5.0, nil, nil, now, now))

	repo := NewTrailRepo(db)
	trail, err := repo.Create(context.Background(), NewTrail{
		Name:               "Eagle Peak",
		Difficulty:         "hard",
		LengthKM:           &length,
		ElevationGainM:     &elevation,
		EstimatedTimeHours: &hours,
	})
	require.NoError(t, err)

	require.NotNil(t, trail.LengthKM)
	assert.Equal(t, 12.5, *trail.LengthKM)
	require.NotNil(t, trail.ElevationGainM)
	assert.Equal(t, 400, *trail.ElevationGainM)
	assert.NoError(t, mock.ExpectationsWereMet())
}

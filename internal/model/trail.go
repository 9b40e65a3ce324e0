package model

import "time"

// Difficulty values accepted for a trail. Stored as an ENUM column.
const (
	DifficultyEasy     = "easy"
	DifficultyModerate = "moderate"
	DifficultyHard     = "hard"
	DifficultyExpert   = "expert"
)

// ValidDifficulty reports whether s is one of the accepted difficulty values.
func ValidDifficulty(s string) bool {
	switch s {
	case DifficultyEasy, DifficultyModerate, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

// Trail represents a row in the `trails` table.  A trail always has
// exactly one associated traffic report, created alongside it.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the trail.
//  Description        – free-form description (nullable).
//  Difficulty         – one of easy/moderate/hard/expert.
//  LengthKM           – trail length in kilometres (0.1–500, nullable).
//  ElevationGainM     – total elevation gain in metres (0–10000, nullable).
//  EstimatedTimeHours – rough completion time in hours (0.1–100, nullable).
//  Location           – human-readable area name (nullable).
//  ImageURL           – optional cover image (nullable).
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Trail struct {
	ID                 uint64    `json:"id"`
	Name               string    `json:"name"`
	Description        *string   `json:"description"`
	Difficulty         string    `json:"difficulty"`
	LengthKM           *float64  `json:"length_km"`
	ElevationGainM     *int      `json:"elevation_gain_m"`
	EstimatedTimeHours *float64  `json:"estimated_time_hours"`
	Location           *string   `json:"location"`
	ImageURL           *string   `json:"image_url"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TrailWithTraffic is a Trail joined with its current traffic report.
// CongestionLevel is a pointer because the LEFT JOIN may find no report.
// IsFavorite is only populated for authenticated requests.
type TrailWithTraffic struct {
	Trail
	CongestionLevel  *int       `json:"congestion_level"`
	ReporterCount    *int       `json:"reporter_count,omitempty"`
	TrafficNotes     *string    `json:"traffic_notes,omitempty"`
	TrafficUpdatedAt *time.Time `json:"traffic_updated_at"`
	IsFavorite       *bool      `json:"is_favorite,omitempty"`
}

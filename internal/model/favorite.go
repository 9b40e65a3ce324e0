package model

import "time"

// Favorite represents a row in the `user_favorites` table.  The
// (user_id, trail_id) pair is unique; adding an existing pair is a
// no-op at the store level.
type Favorite struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	TrailID   uint64    `json:"trail_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteTrail is a favorited trail joined with its congestion level,
// as returned by the favorites list endpoint.
type FavoriteTrail struct {
	Trail
	FavoritedAt     time.Time `json:"favorited_at"`
	CongestionLevel *int      `json:"congestion_level"`
}

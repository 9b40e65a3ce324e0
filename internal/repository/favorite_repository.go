package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/trailwatch/trailwatch/internal/model"
)

// FavoriteRepo provides access to the `user_favorites` relation.
type FavoriteRepo struct{ DB *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{DB: db} }

// ListForUser returns the user's favorited trails joined with their
// congestion level, most recently favorited first.
func (r *FavoriteRepo) ListForUser(ctx context.Context, userID uint64) ([]model.FavoriteTrail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.name, t.description, t.difficulty, t.length_km, t.elevation_gain_m,
		        t.estimated_time_hours, t.location, t.image_url, t.created_at, t.updated_at,
		        uf.created_at AS favorited_at,
		        tr.congestion_level
		 FROM user_favorites uf
		 JOIN trails t ON t.id = uf.trail_id
		 LEFT JOIN traffic_reports tr ON tr.trail_id = t.id
		 WHERE uf.user_id=?
		 ORDER BY uf.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.FavoriteTrail{}
	for rows.Next() {
		var f model.FavoriteTrail
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Difficulty, &f.LengthKM,
			&f.ElevationGainM, &f.EstimatedTimeHours, &f.Location, &f.ImageURL,
			&f.CreatedAt, &f.UpdatedAt, &f.FavoritedAt, &f.CongestionLevel); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// IsFavorited reports whether the user has favorited the trail.
func (r *FavoriteRepo) IsFavorited(ctx context.Context, userID, trailID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM user_favorites WHERE user_id=? AND trail_id=?",
		userID, trailID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Statuses returns the subset of trailIDs the user has favorited, in a
// single query. Used to annotate a page of search results without N
// existence checks.
func (r *FavoriteRepo) Statuses(ctx context.Context, userID uint64, trailIDs []uint64) (map[uint64]bool, error) {
	out := map[uint64]bool{}
	if len(trailIDs) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(trailIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(trailIDs)+1)
	args = append(args, userID)
	for _, id := range trailIDs {
		args = append(args, id)
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT trail_id FROM user_favorites WHERE user_id=? AND trail_id IN ("+placeholders+")",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// Add favorites a trail for a user. Re-adding an existing pair is a
// successful no-op thanks to the unique (user_id, trail_id) constraint;
// concurrent duplicate adds resolve the same way. A trail or user that
// does not exist surfaces as ErrBadReference.
func (r *FavoriteRepo) Add(ctx context.Context, userID, trailID uint64) (model.Favorite, error) {
	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_favorites (user_id, trail_id) VALUES (?,?) ON DUPLICATE KEY UPDATE id=id",
		userID, trailID); err != nil {
		return model.Favorite{}, translateErr(err)
	}

	var f model.Favorite
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, trail_id, created_at FROM user_favorites WHERE user_id=? AND trail_id=?",
		userID, trailID).Scan(&f.ID, &f.UserID, &f.TrailID, &f.CreatedAt)
	return f, err
}

// Remove deletes the favorite relation and reports whether a row was
// actually removed. Removing a non-existent relation is a no-op.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, trailID uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_favorites WHERE user_id=? AND trail_id=?",
		userID, trailID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

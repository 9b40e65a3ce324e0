package repository

import (
	"context"
	"strings"

	"github.com/trailwatch/trailwatch/internal/model"
)

// TrailSearchQuery defines filters & pagination for searching trails.
// All filters combine with AND. Search matches name or location,
// Location matches location only; both are case-insensitive substring
// matches. MaxLength is an inclusive upper bound on length_km (zero
// disables it).
type TrailSearchQuery struct {
	Difficulty string
	MaxLength  float64
	Location   string
	Search     string
	Page       Page
}

// Search returns one page of trails joined with their congestion level,
// plus the total number of matches. The count query runs over the same
// predicate but without the join, so total never depends on limit or
// offset. Ordering is by trail id ascending, which keeps pagination
// stable while congestion values churn.
func (r *TrailRepo) Search(ctx context.Context, q TrailSearchQuery) ([]model.TrailWithTraffic, int64, error) {
	where := []string{}
	args := []any{}

	if q.Difficulty != "" {
		where = append(where, "t.difficulty = ?")
		args = append(args, q.Difficulty)
	}
	if q.MaxLength > 0 {
		where = append(where, "t.length_km <= ?")
		args = append(args, q.MaxLength)
	}
	if q.Location != "" {
		where = append(where, "LOWER(t.location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}
	if q.Search != "" {
		where = append(where, "(LOWER(t.name) LIKE ? OR LOWER(t.location) LIKE ?)")
		needle := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, needle, needle)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM trails t WHERE ` + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT
			t.id, t.name, t.description, t.difficulty, t.length_km, t.elevation_gain_m,
			t.estimated_time_hours, t.location, t.image_url, t.created_at, t.updated_at,
			tr.congestion_level,
			tr.updated_at AS traffic_updated_at
		FROM trails t
		LEFT JOIN traffic_reports tr ON tr.trail_id = t.id
		WHERE ` + cond + `
		ORDER BY t.id ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), q.Page.Limit, q.Page.Offset())

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.TrailWithTraffic, 0, q.Page.Limit)
	for rows.Next() {
		var t model.TrailWithTraffic
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.Difficulty, &t.LengthKM, &t.ElevationGainM,
			&t.EstimatedTimeHours, &t.Location, &t.ImageURL, &t.CreatedAt, &t.UpdatedAt,
			&t.CongestionLevel, &t.TrafficUpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/trailwatch/trailwatch/internal/model"
)

// TrailRepo provides CRUD access to the `trails` table.
type TrailRepo struct{ DB *sql.DB }

func NewTrailRepo(db *sql.DB) *TrailRepo { return &TrailRepo{DB: db} }

const trailColumns = "id, name, description, difficulty, length_km, elevation_gain_m, estimated_time_hours, location, image_url, created_at, updated_at"

func scanTrail(row *sql.Row) (model.Trail, error) {
	var t model.Trail
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Difficulty, &t.LengthKM,
		&t.ElevationGainM, &t.EstimatedTimeHours, &t.Location, &t.ImageURL,
		&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

// NewTrail carries the fields accepted when creating a trail. Nil
// optional fields are stored as NULL rather than a zero value, so an
// omitted length never reads back as 0 km.
type NewTrail struct {
	Name               string
	Description        *string
	Difficulty         string
	LengthKM           *float64
	ElevationGainM     *int
	EstimatedTimeHours *float64
	Location           *string
	ImageURL           *string
}

// Create inserts a trail and seeds its traffic report at congestion
// level 1, then returns the stored row. The seed insert keeps the
// one-report-per-trail invariant from the moment of creation.
func (r *TrailRepo) Create(ctx context.Context, in NewTrail) (model.Trail, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO trails (name, description, difficulty, length_km, elevation_gain_m, estimated_time_hours, location, image_url)
		 VALUES (?,?,?,?,?,?,?,?)`,
		in.Name, in.Description, in.Difficulty, in.LengthKM,
		in.ElevationGainM, in.EstimatedTimeHours, in.Location, in.ImageURL)
	if err != nil {
		return model.Trail{}, translateErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Trail{}, err
	}

	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO traffic_reports (trail_id, congestion_level) VALUES (?, 1)",
		id); err != nil {
		return model.Trail{}, translateErr(err)
	}

	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a trail row without traffic fields.
func (r *TrailRepo) GetByID(ctx context.Context, id uint64) (model.Trail, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+trailColumns+" FROM trails WHERE id=?", id)
	return scanTrail(row)
}

// GetWithTraffic fetches a trail joined with its current traffic report.
// The LEFT JOIN tolerates a missing report; traffic fields come back nil.
func (r *TrailRepo) GetWithTraffic(ctx context.Context, id uint64) (model.TrailWithTraffic, error) {
	var t model.TrailWithTraffic
	err := r.DB.QueryRowContext(ctx,
		`SELECT t.id, t.name, t.description, t.difficulty, t.length_km, t.elevation_gain_m,
		        t.estimated_time_hours, t.location, t.image_url, t.created_at, t.updated_at,
		        tr.congestion_level, tr.reporter_count, tr.notes, tr.updated_at
		 FROM trails t
		 LEFT JOIN traffic_reports tr ON tr.trail_id = t.id
		 WHERE t.id=?`, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.Difficulty, &t.LengthKM, &t.ElevationGainM,
		&t.EstimatedTimeHours, &t.Location, &t.ImageURL, &t.CreatedAt, &t.UpdatedAt,
		&t.CongestionLevel, &t.ReporterCount, &t.TrafficNotes, &t.TrafficUpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

// TrailPatch carries the optional fields of a partial update. Nil means
// "leave unchanged".
type TrailPatch struct {
	Name               *string
	Description        *string
	Difficulty         *string
	LengthKM           *float64
	ElevationGainM     *int
	EstimatedTimeHours *float64
	Location           *string
	ImageURL           *string
}

// Update applies a partial update, building the SET list from the
// provided fields only. An empty patch returns the current row.
func (r *TrailRepo) Update(ctx context.Context, id uint64, p TrailPatch) (model.Trail, error) {
	sets := []string{}
	args := []any{}

	if p.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *p.Name)
	}
	if p.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *p.Description)
	}
	if p.Difficulty != nil {
		sets = append(sets, "difficulty=?")
		args = append(args, *p.Difficulty)
	}
	if p.LengthKM != nil {
		sets = append(sets, "length_km=?")
		args = append(args, *p.LengthKM)
	}
	if p.ElevationGainM != nil {
		sets = append(sets, "elevation_gain_m=?")
		args = append(args, *p.ElevationGainM)
	}
	if p.EstimatedTimeHours != nil {
		sets = append(sets, "estimated_time_hours=?")
		args = append(args, *p.EstimatedTimeHours)
	}
	if p.Location != nil {
		sets = append(sets, "location=?")
		args = append(args, *p.Location)
	}
	if p.ImageURL != nil {
		sets = append(sets, "image_url=?")
		args = append(args, *p.ImageURL)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE trails SET "+strings.Join(sets, ", ")+" WHERE id=?",
		args...); err != nil {
		return model.Trail{}, translateErr(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a trail and returns the deleted row. Traffic reports
// and favorites go with it via ON DELETE CASCADE.
func (r *TrailRepo) Delete(ctx context.Context, id uint64) (model.Trail, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Trail{}, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM trails WHERE id=?", id); err != nil {
		return model.Trail{}, err
	}
	return t, nil
}

// Exists reports whether a trail row exists.
func (r *TrailRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM trails WHERE id=?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"

	"github.com/trailwatch/trailwatch/internal/model"
)

// TrafficRepo provides access to the `traffic_reports` table.
type TrafficRepo struct{ DB *sql.DB }

func NewTrafficRepo(db *sql.DB) *TrafficRepo { return &TrafficRepo{DB: db} }

// GetByTrailID fetches the traffic report for one trail, joined with the
// trail name.
func (r *TrafficRepo) GetByTrailID(ctx context.Context, trailID uint64) (model.TrafficReportDetail, error) {
	var d model.TrafficReportDetail
	err := r.DB.QueryRowContext(ctx,
		`SELECT tr.id, tr.trail_id, tr.congestion_level, tr.notes, tr.reporter_count, tr.updated_at,
		        t.name
		 FROM traffic_reports tr
		 JOIN trails t ON t.id = tr.trail_id
		 WHERE tr.trail_id=?`, trailID).Scan(
		&d.ID, &d.TrailID, &d.CongestionLevel, &d.Notes, &d.ReporterCount, &d.UpdatedAt,
		&d.TrailName)
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrNotFound
	}
	return d, err
}

// GetAll returns every traffic report joined with trail name and
// location, busiest trails first.
func (r *TrafficRepo) GetAll(ctx context.Context) ([]model.TrafficReportDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT tr.id, tr.trail_id, tr.congestion_level, tr.notes, tr.reporter_count, tr.updated_at,
		        t.name, t.location
		 FROM traffic_reports tr
		 JOIN trails t ON t.id = tr.trail_id
		 ORDER BY tr.congestion_level DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TrafficReportDetail{}
	for rows.Next() {
		var d model.TrafficReportDetail
		if err := rows.Scan(&d.ID, &d.TrailID, &d.CongestionLevel, &d.Notes,
			&d.ReporterCount, &d.UpdatedAt, &d.TrailName, &d.TrailLocation); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Update records a manual traffic report: the congestion level is
// replaced, notes are preserved when the new value is nil, and the
// reporter count is incremented.
func (r *TrafficRepo) Update(ctx context.Context, trailID uint64, level int, notes *string) (model.TrafficReportDetail, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE traffic_reports
		 SET congestion_level=?, notes=COALESCE(?, notes), reporter_count=reporter_count+1, updated_at=NOW()
		 WHERE trail_id=?`,
		level, notes, trailID)
	if err != nil {
		return model.TrafficReportDetail{}, translateErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.TrafficReportDetail{}, ErrNotFound
	}
	return r.GetByTrailID(ctx, trailID)
}

// randomLevel draws a congestion level uniformly from [1,5].
func randomLevel() int {
	return rand.Intn(5) + 1
}

// RefreshAll re-randomizes the congestion level of every trail's traffic
// report and returns the updated reports. This stands in for real
// telemetry ingestion. A trail without a report is silently skipped.
// Each row is its own UPDATE; a failure partway through leaves earlier
// rows updated and is reported to the caller without retry.
func (r *TrafficRepo) RefreshAll(ctx context.Context) ([]model.TrafficReport, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id FROM trails")
	if err != nil {
		return nil, err
	}
	ids := []uint64{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	updates := []model.TrafficReport{}
	for _, id := range ids {
		if _, err := r.DB.ExecContext(ctx,
			"UPDATE traffic_reports SET congestion_level=?, updated_at=NOW() WHERE trail_id=?",
			randomLevel(), id); err != nil {
			return updates, err
		}

		var rep model.TrafficReport
		err := r.DB.QueryRowContext(ctx,
			"SELECT id, trail_id, congestion_level, notes, reporter_count, updated_at FROM traffic_reports WHERE trail_id=?",
			id).Scan(&rep.ID, &rep.TrailID, &rep.CongestionLevel, &rep.Notes, &rep.ReporterCount, &rep.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			continue // trail was created without a report; not an error
		}
		if err != nil {
			return updates, err
		}
		updates = append(updates, rep)
	}
	return updates, nil
}

// Stats summarizes congestion across all traffic reports. Average is
// rounded to two decimals; buckets are low (<=2), moderate (=3) and
// high (>=4).
func (r *TrafficRepo) Stats(ctx context.Context) (model.TrafficStats, error) {
	var s model.TrafficStats
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(ROUND(AVG(congestion_level), 2), 0),
		        COALESCE(SUM(CASE WHEN congestion_level <= 2 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN congestion_level = 3 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN congestion_level >= 4 THEN 1 ELSE 0 END), 0)
		 FROM traffic_reports`).Scan(
		&s.TotalTrails, &s.AvgCongestion, &s.LowTraffic, &s.ModerateTraffic, &s.HighTraffic)
	return s, err
}

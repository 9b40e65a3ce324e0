package model

import "time"

// TrafficReport represents a row in the `traffic_reports` table.  Each
// trail has exactly one report (trail_id is unique); the row is created
// when the trail is created and removed with it via cascade.
//
// Fields:
//  ID              – primary key identifier.
//  TrailID         – owning trail (unique foreign key).
//  CongestionLevel – current congestion, always within [1,5].
//  Notes           – optional reporter notes (≤500 chars, nullable).
//  ReporterCount   – number of manual reports submitted so far.
//  UpdatedAt       – when the level was last written.
type TrafficReport struct {
	ID              uint64    `json:"id"`
	TrailID         uint64    `json:"trail_id"`
	CongestionLevel int       `json:"congestion_level"`
	Notes           *string   `json:"notes"`
	ReporterCount   int       `json:"reporter_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TrafficReportDetail is a TrafficReport joined with trail metadata for
// list and per-trail views. CongestionLabel is filled in by the handler.
type TrafficReportDetail struct {
	TrafficReport
	TrailName       string  `json:"trail_name"`
	TrailLocation   *string `json:"location,omitempty"`
	CongestionLabel string  `json:"congestion_label,omitempty"`
}

// TrafficStats summarizes congestion across all traffic reports.
type TrafficStats struct {
	TotalTrails     int     `json:"total_trails"`
	AvgCongestion   float64 `json:"avg_congestion"`
	LowTraffic      int     `json:"low_traffic"`
	ModerateTraffic int     `json:"moderate_traffic"`
	HighTraffic     int     `json:"high_traffic"`
}

// CongestionLabel maps a congestion level to its human-readable label.
func CongestionLabel(level int) string {
	switch level {
	case 1:
		return "Very Low"
	case 2:
		return "Low"
	case 3:
		return "Moderate"
	case 4:
		return "High"
	case 5:
		return "Very High"
	}
	return "Unknown"
}

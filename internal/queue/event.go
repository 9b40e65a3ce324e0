// Package queue defines message payloads exchanged over the message broker.
package queue

// Sources of a traffic change.
const (
	SourceReport  = "report"  // manual congestion report via the API
	SourceRefresh = "refresh" // simulated telemetry refresh run
)

// TrafficUpdatedEvent is published whenever a trail's congestion level
// changes. It carries enough information for downstream consumers to
// log or trigger notifications without querying the primary database.
type TrafficUpdatedEvent struct {
	TrailID         uint64 `json:"trail_id"`
	TrailName       string `json:"trail_name,omitempty"`
	CongestionLevel int    `json:"congestion_level"`
	ReporterCount   int    `json:"reporter_count"`
	Source          string `json:"source"`
	UpdatedAt       string `json:"updated_at"`
}

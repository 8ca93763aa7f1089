package models

import "time"

// ServerStats aggregates request records into the counters shown on
// the dashboard's stats tab.
type ServerStats struct {
	StartedAt        time.Time `json:"started_at"`
	TotalRequests    int64     `json:"total_requests"`
	FullResponses    int64     `json:"full_responses"`
	PartialResponses int64     `json:"partial_responses"`
	NotFound         int64     `json:"not_found"`
	Unsatisfiable    int64     `json:"unsatisfiable"`
	MethodRejected   int64     `json:"method_rejected"`
	ServerErrors     int64     `json:"server_errors"`
	BytesServed      int64     `json:"bytes_served"`
}

// Observe folds one request record into the counters.
func (s *ServerStats) Observe(rec RequestRecord) {
	s.TotalRequests++
	s.BytesServed += rec.BytesWritten
	switch {
	case rec.Status == 200:
		s.FullResponses++
	case rec.Status == 206:
		s.PartialResponses++
	case rec.Status == 404:
		s.NotFound++
	case rec.Status == 405:
		s.MethodRejected++
	case rec.Status == 416:
		s.Unsatisfiable++
	case rec.Status >= 500:
		s.ServerErrors++
	}
}

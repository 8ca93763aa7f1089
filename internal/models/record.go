package models

import (
	"time"
)

type RangeKind string

const (
	// RangeKindNone: the request carried no Range header.
	RangeKindNone RangeKind = "NONE"
	// RangeKindMalformed: the header was unusable and the full resource
	// was served instead.
	RangeKindMalformed RangeKind = "MALFORMED"
	// RangeKindPartial: a satisfiable range was served with 206.
	RangeKindPartial RangeKind = "PARTIAL"
	// RangeKindUnsatisfiable: the range fell outside the resource, 416.
	RangeKindUnsatisfiable RangeKind = "UNSATISFIABLE"
)

// RequestRecord is one completed request as seen by the access log and
// the dashboard.
type RequestRecord struct {
	Id           int64         `json:"id" sqliteDb:"id,primary"`
	Time         time.Time     `json:"time" sqliteDb:"time"`
	RemoteAddr   string        `json:"remote_addr" sqliteDb:"remote_addr"`
	Method       string        `json:"method" sqliteDb:"method"`
	Path         string        `json:"path" sqliteDb:"path"`
	Status       int           `json:"status" sqliteDb:"status"`
	RangeKind    RangeKind     `json:"range_kind" sqliteDb:"range_kind"`
	RangeHeader  string        `json:"range_header" sqliteDb:"range_header"`
	ContentType  string        `json:"content_type" sqliteDb:"content_type"`
	BytesWritten int64         `json:"bytes_written" sqliteDb:"bytes_written"`
	Duration     time.Duration `json:"duration" sqliteDb:"duration"`
}

// RecordMsg carries a fresh RequestRecord into the dashboard's update
// loop.
type RecordMsg struct {
	Record RequestRecord
}

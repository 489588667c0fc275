package domain

import (
	"maps"
	"time"
)

// TolledRecord is a DistanceRecord with per-class tolls and, once time
// adjusted, the assigned one-hour span and the window that priced it.
type TolledRecord struct {
	DistanceRecord
	Tolls     map[VehicleClass]float64
	StartDay  time.Weekday
	StartTime ClockTime
	EndDay    time.Weekday
	EndTime   ClockTime
	Window    string
}

// Clone returns a copy that owns its toll map.
func (r TolledRecord) Clone() TolledRecord {
	r.Tolls = maps.Clone(r.Tolls)
	return r
}

// Span returns the record's assigned day/time span.
func (r TolledRecord) Span() TimedSpan {
	return TimedSpan{
		IDStart:   r.IDStart,
		IDEnd:     r.IDEnd,
		StartDay:  r.StartDay,
		StartTime: r.StartTime,
		EndDay:    r.EndDay,
		EndTime:   r.EndTime,
	}
}

// A (pair, start, end) timing entry, checked for weekly coverage.
type TimedSpan struct {
	IDStart   LocationID
	IDEnd     LocationID
	StartDay  time.Weekday
	StartTime ClockTime
	EndDay    time.Weekday
	EndTime   ClockTime
}

// Duration is the time-of-day distance from StartTime to EndTime, wrapping
// at midnight.
func (s TimedSpan) Duration() time.Duration {
	d := int(s.EndTime) - int(s.StartTime)
	if d < 0 {
		d += SecondsPerDay
	}
	return time.Duration(d) * time.Second
}

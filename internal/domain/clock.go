package domain

import (
	"fmt"
	"time"
)

// Number of seconds in a day; also the exclusive upper bound of a ClockTime.
const SecondsPerDay = 24 * 60 * 60

// ClockTime is a time of day with second resolution, stored as seconds
// since midnight. Valid values are [0, SecondsPerDay).
type ClockTime int

func NewClockTime(hour, minute, second int) ClockTime {
	return ClockTime(hour*3600 + minute*60 + second)
}

// ParseClockTime parses "HH:MM:SS".
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse(time.TimeOnly, s)
	if err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, ErrInvalidInput)
	}
	return NewClockTime(t.Hour(), t.Minute(), t.Second()), nil
}

func (c ClockTime) Valid() bool { return c >= 0 && c < SecondsPerDay }

// Add shifts the time by d, wrapping at midnight.
func (c ClockTime) Add(d time.Duration) ClockTime {
	s := (int(c) + int(d/time.Second)) % SecondsPerDay
	if s < 0 {
		s += SecondsPerDay
	}
	return ClockTime(s)
}

func (c ClockTime) Hour() int   { return int(c) / 3600 }
func (c ClockTime) Minute() int { return int(c) % 3600 / 60 }
func (c ClockTime) Second() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
}

// NextWeekday returns the calendar day after d, wrapping Sunday to Monday.
func NextWeekday(d time.Weekday) time.Weekday { return (d + 1) % 7 }

// A start day and time assigned to one record.
type Slot struct {
	Day  time.Weekday
	Time ClockTime
}

func (s Slot) Valid() bool { return s.Day >= time.Sunday && s.Day <= time.Saturday && s.Time.Valid() }

func (s Slot) String() string { return s.Day.String() + " " + s.Time.String() }

package domain

import (
	"fmt"
	"math"
	"slices"
	"time"
)

var (
	Weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	Weekend  = []time.Weekday{time.Saturday, time.Sunday}
)

// TimeWindow applies Multiplier to tolls whose start slot falls on one of
// Days within [Start, End). End may be SecondsPerDay to close the day.
type TimeWindow struct {
	Name       string
	Days       []time.Weekday
	Start      ClockTime
	End        ClockTime
	Multiplier float64
}

func (w TimeWindow) Contains(s Slot) bool {
	return slices.Contains(w.Days, s.Day) && s.Time >= w.Start && s.Time < w.End
}

// TimeWindowTable is an ordered rule table; at most one window may match
// any slot.
type TimeWindowTable struct {
	windows []TimeWindow
}

func NewTimeWindowTable(windows ...TimeWindow) (TimeWindowTable, error) {
	t := TimeWindowTable{windows: slices.Clone(windows)}
	for i := range t.windows {
		t.windows[i].Days = slices.Clone(t.windows[i].Days)
	}
	if err := t.Validate(); err != nil {
		return TimeWindowTable{}, err
	}
	return t, nil
}

// DefaultTimeWindows returns the weekday morning/day/evening and weekend
// multipliers. The evening window runs to the end of the day, so 23:59:59
// is covered.
func DefaultTimeWindows() TimeWindowTable {
	return TimeWindowTable{windows: []TimeWindow{
		{Name: "weekday_morning", Days: Weekdays, Start: NewClockTime(0, 0, 0), End: NewClockTime(10, 0, 0), Multiplier: 0.8},
		{Name: "weekday_day", Days: Weekdays, Start: NewClockTime(10, 0, 0), End: NewClockTime(18, 0, 0), Multiplier: 1.2},
		{Name: "weekday_evening", Days: Weekdays, Start: NewClockTime(18, 0, 0), End: SecondsPerDay, Multiplier: 0.8},
		{Name: "weekend", Days: Weekend, Start: 0, End: SecondsPerDay, Multiplier: 0.7},
	}}
}

// Validate checks each window's bounds and multiplier, and that no two
// windows sharing a day overlap.
func (t TimeWindowTable) Validate() error {
	if len(t.windows) == 0 {
		return fmt.Errorf("time window table: no windows: %w", ErrInvalidInput)
	}
	for i, w := range t.windows {
		if len(w.Days) == 0 {
			return fmt.Errorf("time window table: %q has no days: %w", w.Name, ErrInvalidInput)
		}
		if w.Start < 0 || w.End > SecondsPerDay || w.Start >= w.End {
			return fmt.Errorf("time window table: %q bounds [%d, %d) invalid: %w", w.Name, w.Start, w.End, ErrInvalidInput)
		}
		if math.IsNaN(w.Multiplier) || math.IsInf(w.Multiplier, 0) || w.Multiplier <= 0 {
			return fmt.Errorf("time window table: %q multiplier %v must be positive: %w", w.Name, w.Multiplier, ErrInvalidInput)
		}
		for _, o := range t.windows[:i] {
			if !sharesDay(w.Days, o.Days) {
				continue
			}
			if w.Start < o.End && o.Start < w.End {
				return fmt.Errorf("time window table: %q overlaps %q: %w", w.Name, o.Name, ErrInvalidInput)
			}
		}
	}
	return nil
}

func sharesDay(a, b []time.Weekday) bool {
	for _, d := range a {
		if slices.Contains(b, d) {
			return true
		}
	}
	return false
}

func (t TimeWindowTable) Windows() []TimeWindow { return slices.Clone(t.windows) }

// Matching returns every window containing s, in table order.
func (t TimeWindowTable) Matching(s Slot) []TimeWindow {
	var out []TimeWindow
	for _, w := range t.windows {
		if w.Contains(s) {
			out = append(out, w)
		}
	}
	return out
}

// Match returns the single window for s. An invalid slot, or a slot no
// window covers, fails with ErrUnhandledTimeWindow.
func (t TimeWindowTable) Match(s Slot) (TimeWindow, error) {
	if !s.Valid() {
		return TimeWindow{}, fmt.Errorf("match time window: slot day=%d time=%d out of range: %w", s.Day, s.Time, ErrUnhandledTimeWindow)
	}
	matches := t.Matching(s)
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return TimeWindow{}, fmt.Errorf("match time window: no window for %s: %w", s, ErrUnhandledTimeWindow)
	default:
		return TimeWindow{}, fmt.Errorf("match time window: %d windows for %s: %w", len(matches), s, ErrUnhandledTimeWindow)
	}
}

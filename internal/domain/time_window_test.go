package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTimeWindowsCoverEverySecond(t *testing.T) {
	windows := DefaultTimeWindows()
	require.NoError(t, windows.Validate())

	for _, day := range []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		for s := ClockTime(0); s < SecondsPerDay; s++ {
			matches := windows.Matching(Slot{Day: day, Time: s})
			if len(matches) != 1 {
				t.Fatalf("%s %s: %d windows match, want 1", day, s, len(matches))
			}
		}
	}
}

func TestDefaultTimeWindowsBoundaries(t *testing.T) {
	windows := DefaultTimeWindows()

	tests := []struct {
		slot Slot
		want string
		mult float64
	}{
		{Slot{time.Monday, NewClockTime(0, 0, 0)}, "weekday_morning", 0.8},
		{Slot{time.Monday, NewClockTime(9, 59, 59)}, "weekday_morning", 0.8},
		{Slot{time.Tuesday, NewClockTime(10, 0, 0)}, "weekday_day", 1.2},
		{Slot{time.Wednesday, NewClockTime(17, 59, 59)}, "weekday_day", 1.2},
		{Slot{time.Thursday, NewClockTime(18, 0, 0)}, "weekday_evening", 0.8},
		{Slot{time.Friday, NewClockTime(23, 59, 59)}, "weekday_evening", 0.8},
		{Slot{time.Saturday, NewClockTime(12, 0, 0)}, "weekend", 0.7},
		{Slot{time.Sunday, NewClockTime(23, 59, 59)}, "weekend", 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.slot.String(), func(t *testing.T) {
			w, err := windows.Match(tt.slot)
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.Name)
			assert.Equal(t, tt.mult, w.Multiplier)
		})
	}
}

func TestTimeWindowMatchInvalidSlot(t *testing.T) {
	windows := DefaultTimeWindows()

	_, err := windows.Match(Slot{Day: time.Monday, Time: SecondsPerDay})
	assert.ErrorIs(t, err, ErrUnhandledTimeWindow)
	_, err = windows.Match(Slot{Day: time.Weekday(9), Time: 0})
	assert.ErrorIs(t, err, ErrUnhandledTimeWindow)
}

func TestTimeWindowMatchGap(t *testing.T) {
	windows, err := NewTimeWindowTable(
		TimeWindow{Name: "morning", Days: Weekdays, Start: 0, End: NewClockTime(10, 0, 0), Multiplier: 0.8},
	)
	require.NoError(t, err)

	_, err = windows.Match(Slot{Day: time.Monday, Time: NewClockTime(11, 0, 0)})
	assert.ErrorIs(t, err, ErrUnhandledTimeWindow)
	_, err = windows.Match(Slot{Day: time.Saturday, Time: 0})
	assert.ErrorIs(t, err, ErrUnhandledTimeWindow)
}

func TestNewTimeWindowTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		windows []TimeWindow
	}{
		{"empty", nil},
		{"no days", []TimeWindow{{Name: "a", Start: 0, End: 10, Multiplier: 1}}},
		{"inverted", []TimeWindow{{Name: "a", Days: Weekend, Start: 10, End: 10, Multiplier: 1}}},
		{"past midnight", []TimeWindow{{Name: "a", Days: Weekend, Start: 0, End: SecondsPerDay + 1, Multiplier: 1}}},
		{"zero multiplier", []TimeWindow{{Name: "a", Days: Weekend, Start: 0, End: 10, Multiplier: 0}}},
		{"overlap", []TimeWindow{
			{Name: "a", Days: []time.Weekday{time.Monday}, Start: 0, End: 100, Multiplier: 1},
			{Name: "b", Days: []time.Weekday{time.Monday, time.Tuesday}, Start: 99, End: 200, Multiplier: 1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeWindowTable(tt.windows...)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := NewTimeWindowTable(
		TimeWindow{Name: "a", Days: []time.Weekday{time.Monday}, Start: 0, End: 100, Multiplier: 1},
		TimeWindow{Name: "b", Days: []time.Weekday{time.Tuesday}, Start: 50, End: 200, Multiplier: 1},
	)
	assert.NoError(t, err, "windows on different days may share hours")
}

func TestClockTime(t *testing.T) {
	c, err := ParseClockTime("23:30:15")
	require.NoError(t, err)
	assert.Equal(t, NewClockTime(23, 30, 15), c)
	assert.Equal(t, "23:30:15", c.String())
	assert.Equal(t, "00:30:15", c.Add(time.Hour).String())
	assert.Equal(t, "22:30:15", c.Add(-time.Hour).String())

	_, err = ParseClockTime("25:00:00")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, time.Monday, NextWeekday(time.Sunday))
	assert.Equal(t, time.Sunday, NextWeekday(time.Saturday))
}

func TestTimedSpanDuration(t *testing.T) {
	span := TimedSpan{StartTime: NewClockTime(23, 30, 0), EndTime: NewClockTime(0, 30, 0)}
	assert.Equal(t, time.Hour, span.Duration())
}

func TestVehicleRateTable(t *testing.T) {
	rates := DefaultVehicleRates()
	require.NoError(t, rates.Validate())
	assert.Equal(t, []VehicleClass{VehicleMoto, VehicleCar, VehicleRV, VehicleBus, VehicleTruck}, rates.Classes())

	m, ok := rates.Multiplier(VehicleTruck)
	assert.True(t, ok)
	assert.Equal(t, 3.6, m)

	parsed, err := ParseVehicleRates(" Moto:1, car:2 ")
	require.NoError(t, err)
	assert.Equal(t, []VehicleRate{{VehicleMoto, 1}, {VehicleCar, 2}}, parsed.Rates())

	for _, bad := range []string{"", "moto", "moto:x", "moto:1,moto:2", "car:-1", "car:0"} {
		_, err := ParseVehicleRates(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"
	"toll-rate-service/internal/domain"

	"golang.org/x/sync/errgroup"
)

// Record count from which scaling is split across goroutines.
const parallelScaleThreshold = 4096

type pricedSlot struct {
	slot   domain.Slot
	window domain.TimeWindow
}

// ApplyTimeWindowRates assigns each record a one-hour span starting at the
// next slot from source and scales every vehicle-class toll by the
// multiplier of the window containing that slot.
//
// The end day is always the day after the start day; the end time is one
// hour after the start time and wraps at midnight without moving the end
// day again. Slots are drawn in record order. Any record whose slot no
// window covers fails the whole call with ErrUnhandledTimeWindow.
func ApplyTimeWindowRates(
	ctx context.Context,
	records []domain.TolledRecord,
	windows domain.TimeWindowTable,
	source SlotSource,
) ([]domain.TolledRecord, error) {
	if source == nil {
		return nil, errors.New("apply time window rates: slot source must be non-nil")
	}
	if err := windows.Validate(); err != nil {
		return nil, fmt.Errorf("apply time window rates: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("apply time window rates: %w", err)
	}

	priced := make([]pricedSlot, len(records))
	for i, r := range records {
		slot, err := source.NextSlot()
		if err != nil {
			return nil, fmt.Errorf("apply time window rates: record %d -> %d: %w", r.IDStart, r.IDEnd, err)
		}
		w, err := windows.Match(slot)
		if err != nil {
			return nil, fmt.Errorf("apply time window rates: record %d -> %d: %w", r.IDStart, r.IDEnd, err)
		}
		priced[i] = pricedSlot{slot: slot, window: w}
	}

	out := make([]domain.TolledRecord, len(records))
	scale := func(from, to int) {
		for i := from; i < to; i++ {
			out[i] = applyWindow(records[i], priced[i])
		}
	}

	if len(records) < parallelScaleThreshold {
		scale(0, len(records))
		return out, nil
	}

	// Partitions are disjoint index ranges, so no shared writes.
	g, gctx := errgroup.WithContext(ctx)
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(records) + workers - 1) / workers
	for start := 0; start < len(records); start += chunk {
		end := min(start+chunk, len(records))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scale(start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("apply time window rates: %w", err)
	}

	return out, nil
}

func applyWindow(r domain.TolledRecord, p pricedSlot) domain.TolledRecord {
	adjusted := r.Clone()
	for class, toll := range adjusted.Tolls {
		adjusted.Tolls[class] = toll * p.window.Multiplier
	}
	adjusted.StartDay = p.slot.Day
	adjusted.StartTime = p.slot.Time
	adjusted.EndDay = domain.NextWeekday(p.slot.Day)
	adjusted.EndTime = p.slot.Time.Add(time.Hour)
	adjusted.Window = p.window.Name
	return adjusted
}

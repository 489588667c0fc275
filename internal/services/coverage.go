package services

import (
	"cmp"
	"slices"
	"time"
	"toll-rate-service/internal/domain"

	"github.com/samber/lo"
)

// Pair of locations whose timing entries are checked together.
type LocationPair struct {
	IDStart domain.LocationID
	IDEnd   domain.LocationID
}

// Coverage result for one pair.
type PairCoverage struct {
	Pair          LocationPair
	TotalDuration time.Duration
	StartDays     int
	EndDays       int
	Incomplete    bool
}

// CheckWeeklyCoverage groups spans by (id_start, id_end) and flags a pair as
// incomplete unless its spans add up to exactly 24 hours and start and end on
// all seven weekdays. Results are ordered by pair.
func CheckWeeklyCoverage(spans []domain.TimedSpan) []PairCoverage {
	groups := lo.GroupBy(spans, func(s domain.TimedSpan) LocationPair {
		return LocationPair{IDStart: s.IDStart, IDEnd: s.IDEnd}
	})

	out := make([]PairCoverage, 0, len(groups))
	for pair, group := range groups {
		total := lo.SumBy(group, func(s domain.TimedSpan) time.Duration { return s.Duration() })
		startDays := len(lo.Uniq(lo.Map(group, func(s domain.TimedSpan, _ int) time.Weekday { return s.StartDay })))
		endDays := len(lo.Uniq(lo.Map(group, func(s domain.TimedSpan, _ int) time.Weekday { return s.EndDay })))

		out = append(out, PairCoverage{
			Pair:          pair,
			TotalDuration: total,
			StartDays:     startDays,
			EndDays:       endDays,
			Incomplete:    total != 24*time.Hour || startDays != 7 || endDays != 7,
		})
	}

	slices.SortFunc(out, func(a, b PairCoverage) int {
		if c := cmp.Compare(a.Pair.IDStart, b.Pair.IDStart); c != 0 {
			return c
		}
		return cmp.Compare(a.Pair.IDEnd, b.Pair.IDEnd)
	})

	return out
}

// SpansOf converts tolled records to their timing spans.
func SpansOf(records []domain.TolledRecord) []domain.TimedSpan {
	return lo.Map(records, func(r domain.TolledRecord, _ int) domain.TimedSpan { return r.Span() })
}

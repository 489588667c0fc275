package services

import (
	"fmt"
	"math"
	"slices"
	"toll-rate-service/internal/domain"

	"github.com/samber/lo"
)

// Share of the reference location's average distance that a location's own
// average may differ by.
const NeighborThresholdRatio = 0.10

// FindIDsWithinTenPercent returns, ascending, every id_start whose average
// outgoing distance lies within 10% of the reference id's average.
func FindIDsWithinTenPercent(records []domain.DistanceRecord, referenceID domain.LocationID) ([]domain.LocationID, error) {
	return FindIDsWithinThreshold(records, referenceID, NeighborThresholdRatio)
}

// FindIDsWithinThreshold compares group means, not rows: each id_start is
// averaged over all its records and kept when |avg - avgRef| <= avgRef*ratio.
// The boundary is inclusive, so the reference id is always in the result.
func FindIDsWithinThreshold(records []domain.DistanceRecord, referenceID domain.LocationID, ratio float64) ([]domain.LocationID, error) {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio < 0 {
		return nil, fmt.Errorf("find ids within threshold: ratio %v: %w", ratio, domain.ErrInvalidInput)
	}

	groups := lo.GroupBy(records, func(r domain.DistanceRecord) domain.LocationID { return r.IDStart })

	refRecords, ok := groups[referenceID]
	if !ok {
		return nil, fmt.Errorf("find ids within threshold: reference id %d: %w", referenceID, domain.ErrReferenceNotFound)
	}

	avgRef := meanDistance(refRecords)
	threshold := avgRef * ratio

	out := make([]domain.LocationID, 0, len(groups))
	for id, group := range groups {
		if math.Abs(meanDistance(group)-avgRef) <= threshold {
			out = append(out, id)
		}
	}
	slices.Sort(out)

	return out, nil
}

func meanDistance(records []domain.DistanceRecord) float64 {
	return lo.SumBy(records, func(r domain.DistanceRecord) float64 { return r.Distance }) / float64(len(records))
}

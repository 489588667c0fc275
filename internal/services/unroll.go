package services

import (
	"fmt"
	"toll-rate-service/internal/domain"
)

// UnrollDistanceMatrix expands m into one directed record per ordered pair of
// distinct ids, outer id ascending, then inner id ascending.
func UnrollDistanceMatrix(m *domain.DistanceMatrix) []domain.DistanceRecord {
	if m == nil || m.Len() < 2 {
		return []domain.DistanceRecord{}
	}

	ids := m.IDs()
	rows := m.Rows()
	out := make([]domain.DistanceRecord, 0, len(ids)*(len(ids)-1))
	for i, a := range ids {
		for j, b := range ids {
			if i == j {
				continue
			}
			out = append(out, domain.DistanceRecord{IDStart: a, IDEnd: b, Distance: rows[i][j]})
		}
	}

	return out
}

// RebuildDistanceMatrix is the inverse of UnrollDistanceMatrix: each record is
// placed as-is, without the summing BuildDistanceMatrix applies.
//
// A pair given in one direction is mirrored. Both directions given with
// different distances, a self record with a non-zero distance, or a negative
// distance fail with ErrInvalidInput.
func RebuildDistanceMatrix(records []domain.DistanceRecord) (*domain.DistanceMatrix, error) {
	type pair struct{ a, b domain.LocationID }

	ids := make([]domain.LocationID, 0)
	seen := make(map[domain.LocationID]struct{})
	dist := make(map[pair]float64, len(records))
	for i, r := range records {
		o := domain.DistanceObservation{Origin: r.IDStart, Destination: r.IDEnd, Distance: r.Distance}
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("rebuild distance matrix: record #%d: %w", i+1, err)
		}
		if r.IDStart == r.IDEnd && r.Distance != 0 {
			return nil, fmt.Errorf("rebuild distance matrix: record #%d: self pair %d has distance %v: %w", i+1, r.IDStart, r.Distance, domain.ErrInvalidInput)
		}
		for _, id := range []domain.LocationID{r.IDStart, r.IDEnd} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}

		key := pair{min(r.IDStart, r.IDEnd), max(r.IDStart, r.IDEnd)}
		if prev, ok := dist[key]; ok && prev != r.Distance {
			return nil, fmt.Errorf(
				"rebuild distance matrix: record #%d: %d <-> %d has %v and %v: %w",
				i+1, key.a, key.b, prev, r.Distance, domain.ErrInvalidInput,
			)
		}
		dist[key] = r.Distance
	}

	index := make(map[domain.LocationID]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	rows := make([][]float64, len(ids))
	for i := range rows {
		rows[i] = make([]float64, len(ids))
	}
	for k, d := range dist {
		rows[index[k.a]][index[k.b]] = d
		rows[index[k.b]][index[k.a]] = d
	}

	m, err := domain.NewDistanceMatrix(ids, rows)
	if err != nil {
		return nil, fmt.Errorf("rebuild distance matrix: %w", err)
	}

	return m, nil
}

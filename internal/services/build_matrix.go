package services

import (
	"fmt"
	"slices"
	"toll-rate-service/internal/domain"
)

// BuildDistanceMatrix turns sparse observations into a dense symmetric matrix
// over every id seen as origin or destination.
//
// Each unordered pair receives the sum of both observed directions; a pair
// observed in one direction only therefore keeps that value both ways. A
// repeated directed observation overwrites the earlier one. The diagonal is
// always 0.
func BuildDistanceMatrix(observations []domain.DistanceObservation) (*domain.DistanceMatrix, error) {
	index := make(map[domain.LocationID]int)
	ids := make([]domain.LocationID, 0)
	for i, o := range observations {
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("build distance matrix: observation #%d: %w", i+1, err)
		}
		for _, id := range []domain.LocationID{o.Origin, o.Destination} {
			if _, ok := index[id]; !ok {
				index[id] = 0
				ids = append(ids, id)
			}
		}
	}

	slices.Sort(ids)
	for i, id := range ids {
		index[id] = i
	}

	n := len(ids)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}

	for _, o := range observations {
		rows[index[o.Origin]][index[o.Destination]] = o.Distance
	}

	for i := 0; i < n; i++ {
		rows[i][i] = 0
		for j := i + 1; j < n; j++ {
			sum := rows[i][j] + rows[j][i]
			rows[i][j] = sum
			rows[j][i] = sum
		}
	}

	m, err := domain.NewDistanceMatrix(ids, rows)
	if err != nil {
		return nil, fmt.Errorf("build distance matrix: %w", err)
	}

	return m, nil
}

package source

import (
	"context"
	"toll-rate-service/internal/domain"
)

// Observation given as a plain triple, for fixtures and demos.
type StaticObservation struct {
	From, To domain.LocationID
	Distance float64
}

// In-memory ObservationSource over a fixed table.
type StaticObservationSource struct {
	observations []domain.DistanceObservation
}

func NewStaticObservationSource(rows []StaticObservation) *StaticObservationSource {
	obs := make([]domain.DistanceObservation, 0, len(rows))
	for _, r := range rows {
		obs = append(obs, domain.DistanceObservation{Origin: r.From, Destination: r.To, Distance: r.Distance})
	}
	return &StaticObservationSource{observations: obs}
}

func (s *StaticObservationSource) ListObservations(ctx context.Context) ([]domain.DistanceObservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.DistanceObservation(nil), s.observations...), nil
}

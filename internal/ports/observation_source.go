package ports

import (
	"context"
	"toll-rate-service/internal/domain"
)

// Port: a boundary for reading the pairwise distance table from storage.
type ObservationSource interface {
	// Return every stored distance observation.
	ListObservations(ctx context.Context) ([]domain.DistanceObservation, error)
}

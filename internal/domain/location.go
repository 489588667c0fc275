package domain

import (
	"fmt"
	"math"
)

// Identifier of a road network location (toll plaza, junction).
type LocationID int64

// A single measured distance between two locations, as read from the
// source table. Only one direction of a pair may be present.
type DistanceObservation struct {
	Origin      LocationID
	Destination LocationID
	Distance    float64
}

// Validate rejects negative and non-finite distances.
func (o DistanceObservation) Validate() error {
	if math.IsNaN(o.Distance) || math.IsInf(o.Distance, 0) {
		return fmt.Errorf("observation %d -> %d: distance %v is not finite: %w", o.Origin, o.Destination, o.Distance, ErrInvalidInput)
	}
	if o.Distance < 0 {
		return fmt.Errorf("observation %d -> %d: distance %v is negative: %w", o.Origin, o.Destination, o.Distance, ErrInvalidInput)
	}
	return nil
}

// Directed (origin, destination, distance) triple produced by unrolling a matrix.
type DistanceRecord struct {
	IDStart  LocationID
	IDEnd    LocationID
	Distance float64
}

package services

import (
	"context"
	"errors"
	"fmt"
	"toll-rate-service/internal/domain"
	"toll-rate-service/internal/platform/obs"
	"toll-rate-service/internal/ports"
)

type ComputeTollsRequest struct {
	Rates   domain.VehicleRateTable
	Windows domain.TimeWindowTable
	// Seed drives the default SeededSlotSource when Slots is nil.
	Seed  uint64
	Slots SlotSource
}

// LoadDistanceMatrix reads every observation from source and builds the matrix.
func LoadDistanceMatrix(ctx context.Context, source ports.ObservationSource) (_ *domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "services.LoadDistanceMatrix")(&err)

	if source == nil {
		return nil, errors.New("load distance matrix: observation source must be non-nil")
	}

	observations, err := source.ListObservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load distance matrix: list observations: %w", err)
	}

	m, err := BuildDistanceMatrix(observations)
	if err != nil {
		return nil, fmt.Errorf("load distance matrix: %w", err)
	}

	return m, nil
}

// LoadDistanceRecords loads the matrix and unrolls it.
func LoadDistanceRecords(ctx context.Context, source ports.ObservationSource) ([]domain.DistanceRecord, error) {
	m, err := LoadDistanceMatrix(ctx, source)
	if err != nil {
		return nil, err
	}
	return UnrollDistanceMatrix(m), nil
}

// FindNeighbors loads the unrolled records and filters them around referenceID.
func FindNeighbors(
	ctx context.Context,
	source ports.ObservationSource,
	referenceID domain.LocationID,
	ratio float64,
) (_ []domain.LocationID, err error) {
	defer obs.Time(ctx, "services.FindNeighbors")(&err)

	records, err := LoadDistanceRecords(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("find neighbors: %w", err)
	}

	ids, err := FindIDsWithinThreshold(records, referenceID, ratio)
	if err != nil {
		return nil, fmt.Errorf("find neighbors: %w", err)
	}

	return ids, nil
}

// ComputeTolls runs the full pipeline: observations -> matrix -> records ->
// vehicle tolls -> time-window adjusted tolls.
func ComputeTolls(
	ctx context.Context,
	req ComputeTollsRequest,
	source ports.ObservationSource,
) (_ []domain.TolledRecord, err error) {
	defer obs.Time(ctx, "services.ComputeTolls")(&err)

	records, err := LoadDistanceRecords(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("compute tolls: %w", err)
	}

	tolled, err := CalculateTollRates(records, req.Rates)
	if err != nil {
		return nil, fmt.Errorf("compute tolls: %w", err)
	}

	slots := req.Slots
	if slots == nil {
		slots = NewSeededSlotSource(req.Seed)
	}

	adjusted, err := ApplyTimeWindowRates(ctx, tolled, req.Windows, slots)
	if err != nil {
		return nil, fmt.Errorf("compute tolls: %w", err)
	}

	return adjusted, nil
}

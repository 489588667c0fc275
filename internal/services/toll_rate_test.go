package services

import (
	"testing"
	"toll-rate-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTollRates(t *testing.T) {
	got, err := CalculateTollRates([]domain.DistanceRecord{rec(1, 2, 100)}, domain.DefaultVehicleRates())
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := map[domain.VehicleClass]float64{
		domain.VehicleMoto:  80,
		domain.VehicleCar:   120,
		domain.VehicleRV:    150,
		domain.VehicleBus:   220,
		domain.VehicleTruck: 360,
	}
	assert.Equal(t, rec(1, 2, 100), got[0].DistanceRecord)
	require.Len(t, got[0].Tolls, len(want))
	for class, toll := range want {
		assert.InDelta(t, toll, got[0].Tolls[class], 1e-9, class)
	}
}

func TestCalculateTollRatesMonotonicInDistance(t *testing.T) {
	records := []domain.DistanceRecord{rec(1, 2, 0), rec(1, 3, 3.5), rec(1, 4, 12), rec(1, 5, 12.25)}

	got, err := CalculateTollRates(records, domain.DefaultVehicleRates())
	require.NoError(t, err)

	for _, class := range domain.DefaultVehicleRates().Classes() {
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].Tolls[class], got[i].Tolls[class], class)
		}
	}
}

func TestCalculateTollRatesOwnsMaps(t *testing.T) {
	got, err := CalculateTollRates([]domain.DistanceRecord{rec(1, 2, 1), rec(2, 1, 1)}, domain.DefaultVehicleRates())
	require.NoError(t, err)

	got[0].Tolls[domain.VehicleCar] = -1
	assert.InDelta(t, 1.2, got[1].Tolls[domain.VehicleCar], 1e-9)
}

func TestCalculateTollRatesRejectsEmptyTable(t *testing.T) {
	_, err := CalculateTollRates([]domain.DistanceRecord{rec(1, 2, 1)}, domain.VehicleRateTable{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

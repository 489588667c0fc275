package services

import (
	"fmt"
	"toll-rate-service/internal/domain"
)

// CalculateTollRates prices every record for every vehicle class in rates as
// distance * class multiplier. Records are copied; the input is not touched.
func CalculateTollRates(records []domain.DistanceRecord, rates domain.VehicleRateTable) ([]domain.TolledRecord, error) {
	if err := rates.Validate(); err != nil {
		return nil, fmt.Errorf("calculate toll rates: %w", err)
	}

	table := rates.Rates()
	out := make([]domain.TolledRecord, 0, len(records))
	for _, r := range records {
		tolls := make(map[domain.VehicleClass]float64, len(table))
		for _, rate := range table {
			tolls[rate.Class] = r.Distance * rate.Multiplier
		}
		out = append(out, domain.TolledRecord{DistanceRecord: r, Tolls: tolls})
	}

	return out, nil
}

package handlers

import (
	"net/http"
	"toll-rate-service/internal/api/dto"
	"toll-rate-service/internal/domain"
	"toll-rate-service/internal/ports"
	"toll-rate-service/internal/services"

	"github.com/samber/lo"
)

type TollHandler struct {
	Source      ports.ObservationSource
	Rates       domain.VehicleRateTable
	Windows     domain.TimeWindowTable
	DefaultSeed uint64
}

// Tolls runs the full pipeline. The optional seed parameter selects the
// day/time assignment, so a given seed always returns the same records.
func (h *TollHandler) Tolls(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	seed, records, ok := h.compute(w, r, "tolls")
	if !ok {
		return
	}

	classes := h.Rates.Classes()
	writeJSON(w, r, http.StatusOK, dto.ListTolledRecordResponse{
		Seed: seed,
		Records: lo.Map(records, func(rec domain.TolledRecord, _ int) dto.TolledRecordResponse {
			return toTolledRecordResponse(rec, classes)
		}),
	})
}

// Coverage checks the tolled output of a seed for full weekly coverage per pair.
func (h *TollHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	seed, records, ok := h.compute(w, r, "coverage")
	if !ok {
		return
	}

	pairs := services.CheckWeeklyCoverage(services.SpansOf(records))
	writeJSON(w, r, http.StatusOK, dto.ListPairCoverageResponse{
		Seed:       seed,
		Incomplete: lo.CountBy(pairs, func(p services.PairCoverage) bool { return p.Incomplete }),
		Pairs: lo.Map(pairs, func(p services.PairCoverage, _ int) dto.PairCoverageResponse {
			return dto.PairCoverageResponse{
				IDStart:         int64(p.Pair.IDStart),
				IDEnd:           int64(p.Pair.IDEnd),
				DurationSeconds: p.TotalDuration.Seconds(),
				StartDays:       p.StartDays,
				EndDays:         p.EndDays,
				Incomplete:      p.Incomplete,
			}
		}),
	})
}

func (h *TollHandler) compute(w http.ResponseWriter, r *http.Request, op string) (uint64, []domain.TolledRecord, bool) {
	seed, ok := queryUint(r, "seed", h.DefaultSeed)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "seed must be a non-negative integer")
		return 0, nil, false
	}

	records, err := services.ComputeTolls(r.Context(), services.ComputeTollsRequest{
		Rates:   h.Rates,
		Windows: h.Windows,
		Seed:    seed,
	}, h.Source)
	if err != nil {
		writeServiceError(w, r, op, err)
		return 0, nil, false
	}

	return seed, records, true
}

func toTolledRecordResponse(rec domain.TolledRecord, classes []domain.VehicleClass) dto.TolledRecordResponse {
	return dto.TolledRecordResponse{
		IDStart:  int64(rec.IDStart),
		IDEnd:    int64(rec.IDEnd),
		Distance: rec.Distance,
		Tolls: lo.Map(classes, func(c domain.VehicleClass, _ int) dto.VehicleToll {
			return dto.VehicleToll{Class: string(c), Toll: rec.Tolls[c]}
		}),
		StartDay:  rec.StartDay.String(),
		StartTime: rec.StartTime.String(),
		EndDay:    rec.EndDay.String(),
		EndTime:   rec.EndTime.String(),
		Window:    rec.Window,
	}
}

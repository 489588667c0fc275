package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"toll-rate-service/internal/api/dto"
	"toll-rate-service/internal/domain"
	"toll-rate-service/internal/ports"
	"toll-rate-service/internal/services"

	"github.com/samber/lo"
)

type DistanceHandler struct {
	Source ports.ObservationSource
}

// Matrix returns the symmetric distance matrix with its sorted ids.
func (h *DistanceHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	m, err := services.LoadDistanceMatrix(r.Context(), h.Source)
	if err != nil {
		writeServiceError(w, r, "distance matrix", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceMatrixResponse{
		IDs:  lo.Map(m.IDs(), func(id domain.LocationID, _ int) int64 { return int64(id) }),
		Rows: m.Rows(),
	})
}

// Records returns the unrolled (id_start, id_end, distance) records.
func (h *DistanceHandler) Records(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	records, err := services.LoadDistanceRecords(r.Context(), h.Source)
	if err != nil {
		writeServiceError(w, r, "distance records", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListDistanceRecordResponse{
		Records: lo.Map(records, func(rec domain.DistanceRecord, _ int) dto.DistanceRecordResponse {
			return dto.DistanceRecordResponse{IDStart: int64(rec.IDStart), IDEnd: int64(rec.IDEnd), Distance: rec.Distance}
		}),
	})
}

// Neighbors lists the ids whose average distance is within ratio of the
// reference id's average.
func (h *DistanceHandler) Neighbors(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	q := r.URL.Query()
	ref, err := strconv.ParseInt(strings.TrimSpace(q.Get("reference_id")), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "reference_id must be an integer")
		return
	}

	ratio := services.NeighborThresholdRatio
	if v := strings.TrimSpace(q.Get("ratio")); v != "" {
		if ratio, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(w, r, http.StatusBadRequest, "ratio must be a number")
			return
		}
	}

	ids, err := services.FindNeighbors(r.Context(), h.Source, domain.LocationID(ref), ratio)
	if err != nil {
		writeServiceError(w, r, "neighbors", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NeighborResponse{
		ReferenceID: ref,
		Ratio:       ratio,
		IDs:         lo.Map(ids, func(id domain.LocationID, _ int) int64 { return int64(id) }),
	})
}

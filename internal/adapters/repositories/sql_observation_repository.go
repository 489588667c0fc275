package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"toll-rate-service/internal/domain"
	"toll-rate-service/internal/platform/obs"
)

// SQL-backed implementation of the ObservationSource port.
type SQLObservationRepository struct{ DB *sql.DB }

func NewSQLObservationRepository(db *sql.DB) *SQLObservationRepository {
	return &SQLObservationRepository{DB: db}
}

// Return all stored observations ordered by (id_start, id_end).
func (s *SQLObservationRepository) ListObservations(ctx context.Context) (_ []domain.DistanceObservation, err error) {
	defer obs.Time(ctx, "repositories.ListObservations")(&err)

	if s.DB == nil {
		return nil, errors.New("sql observation repository: DB is nil")
	}

	query := `
	SELECT
		id_start,
		id_end,
		distance
	FROM distance_observations
	ORDER BY id_start, id_end;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list observations: query distance_observations table: %w", err)
	}
	defer rows.Close()

	observations := make([]domain.DistanceObservation, 0, 64)
	for rows.Next() {
		var start, end int64
		var distance float64
		if err := rows.Scan(&start, &end, &distance); err != nil {
			return nil, fmt.Errorf("list observations: scan row: %w", err)
		}
		observations = append(observations, domain.DistanceObservation{
			Origin:      domain.LocationID(start),
			Destination: domain.LocationID(end),
			Distance:    distance,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list observations: row iteration: %w", err)
	}

	return observations, nil
}

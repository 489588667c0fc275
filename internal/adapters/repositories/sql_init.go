package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"toll-rate-service/internal/domain"
	"toll-rate-service/internal/platform/db"
	"toll-rate-service/internal/platform/obs"
)

// Initialize the observation schema. The DDL is valid for both postgres
// and sqlite.
func InitSchema(ctx context.Context, conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createObservationsQuery := `
	CREATE TABLE IF NOT EXISTS distance_observations (
		id_start BIGINT NOT NULL,
		id_end BIGINT NOT NULL,
		distance DOUBLE PRECISION NOT NULL CHECK (distance >= 0),
		PRIMARY KEY (id_start, id_end)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distance_observations_end_start
	ON distance_observations(id_end, id_start);
	`

	statements := []string{
		createObservationsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert observations keyed by (id_start, id_end). Later rows for the same
// pair overwrite earlier ones, matching the matrix builder.
func SeedObservations(ctx context.Context, conn *sql.DB, driver string, observations []domain.DistanceObservation) (err error) {
	defer obs.Time(ctx, "repositories.SeedObservations")(&err)

	if conn == nil {
		return errors.New("seed observations: DB is nil")
	}

	for i, o := range observations {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("seed observations: row #%d: %w", i+1, err)
		}
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed observations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertObservationQuery(driver))
	if err != nil {
		return fmt.Errorf("seed observations: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, o := range observations {
		if _, err := stmt.ExecContext(ctx, int64(o.Origin), int64(o.Destination), o.Distance); err != nil {
			return fmt.Errorf("seed observations: upsert %d -> %d: %w", o.Origin, o.Destination, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed observations: commit tx: %w", err)
	}

	return nil
}

func upsertObservationQuery(driver string) string {
	values := "(?, ?, ?)"
	if driver == db.DriverPostgres {
		values = "($1, $2, $3)"
	}

	return `
	INSERT INTO distance_observations (
		id_start,
		id_end,
		distance
	)
	VALUES ` + values + `
	ON CONFLICT (id_start, id_end) DO UPDATE SET distance = excluded.distance;
	`
}

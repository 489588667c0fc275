package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"toll-rate-service/internal/domain"
	"toll-rate-service/internal/platform/obs"
)

// Required header columns of the distance table.
var csvColumns = []string{"id_start", "id_end", "distance"}

// CSVObservationSource reads the distance table from a CSV file with an
// id_start,id_end,distance header. Extra columns are ignored. The file is
// re-read on every call.
type CSVObservationSource struct {
	Path string
}

func NewCSVObservationSource(path string) *CSVObservationSource {
	return &CSVObservationSource{Path: path}
}

func (s *CSVObservationSource) ListObservations(ctx context.Context) (_ []domain.DistanceObservation, err error) {
	defer obs.Time(ctx, "csv.ListObservations")(&err)

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("list csv observations: open %q: %w", s.Path, err)
	}
	defer f.Close()

	out, err := ReadObservationsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("list csv observations %q: %w", s.Path, err)
	}
	return out, nil
}

// ReadObservationsCSV parses a distance table. Malformed rows fail with
// domain.ErrInvalidInput naming the 1-based line.
func ReadObservationsCSV(r io.Reader) ([]domain.DistanceObservation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []domain.DistanceObservation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	idx := make([]int, len(csvColumns))
	for i, name := range csvColumns {
		c, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("read csv header: missing column %q: %w", name, domain.ErrInvalidInput)
		}
		idx[i] = c
	}

	out := make([]domain.DistanceObservation, 0, 64)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		o, err := parseObservation(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		out = append(out, o)
	}

	return out, nil
}

func parseObservation(rec []string, idx []int) (domain.DistanceObservation, error) {
	field := func(i int) (string, error) {
		if idx[i] >= len(rec) {
			return "", fmt.Errorf("missing %s: %w", csvColumns[i], domain.ErrInvalidInput)
		}
		return strings.TrimSpace(rec[idx[i]]), nil
	}

	var ids [2]int64
	for i := range ids {
		v, err := field(i)
		if err != nil {
			return domain.DistanceObservation{}, err
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return domain.DistanceObservation{}, fmt.Errorf("%s %q is not a positive integer: %w", csvColumns[i], v, domain.ErrInvalidInput)
		}
		ids[i] = id
	}

	v, err := field(2)
	if err != nil {
		return domain.DistanceObservation{}, err
	}
	d, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return domain.DistanceObservation{}, fmt.Errorf("distance %q: %w", v, domain.ErrInvalidInput)
	}

	o := domain.DistanceObservation{
		Origin:      domain.LocationID(ids[0]),
		Destination: domain.LocationID(ids[1]),
		Distance:    d,
	}
	if err := o.Validate(); err != nil {
		return domain.DistanceObservation{}, err
	}
	return o, nil
}

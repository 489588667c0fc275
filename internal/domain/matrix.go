package domain

import (
	"fmt"
	"math"
	"slices"
)

// DistanceMatrix is an immutable, symmetric, zero-diagonal table of distances
// between every pair of known locations.
//
// Storage is a dense row-major slice indexed through a sorted id list, so
// lookups go through LocationID and never expose raw indices.
type DistanceMatrix struct {
	ids   []LocationID
	index map[LocationID]int
	data  []float64
}

// NewDistanceMatrix validates rows against ids and returns the matrix.
//
// ids must be unique; they are sorted ascending and rows are permuted to
// match. rows[i][j] is the distance from ids[i] to ids[j]. Every entry must be
// finite and non-negative, the diagonal must be 0 and the table symmetric.
func NewDistanceMatrix(ids []LocationID, rows [][]float64) (*DistanceMatrix, error) {
	n := len(ids)
	if len(rows) != n {
		return nil, fmt.Errorf("new distance matrix: %d ids but %d rows: %w", n, len(rows), ErrInvalidInput)
	}

	pos := make(map[LocationID]int, n)
	for i, id := range ids {
		if _, dup := pos[id]; dup {
			return nil, fmt.Errorf("new distance matrix: duplicate id %d: %w", id, ErrInvalidInput)
		}
		pos[id] = i
		if len(rows[i]) != n {
			return nil, fmt.Errorf("new distance matrix: row %d has %d columns, want %d: %w", id, len(rows[i]), n, ErrInvalidInput)
		}
	}

	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	m := &DistanceMatrix{
		ids:   sorted,
		index: make(map[LocationID]int, n),
		data:  make([]float64, n*n),
	}
	for i, id := range sorted {
		m.index[id] = i
	}

	for i, a := range sorted {
		src := rows[pos[a]]
		for j, b := range sorted {
			v := src[pos[b]]
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("new distance matrix: entry %d -> %d = %v: %w", a, b, v, ErrInvalidInput)
			}
			m.data[i*n+j] = v
		}
	}

	for i, a := range sorted {
		if m.data[i*n+i] != 0 {
			return nil, fmt.Errorf("new distance matrix: diagonal %d = %v, want 0: %w", a, m.data[i*n+i], ErrInvalidInput)
		}
		for j := i + 1; j < n; j++ {
			if m.data[i*n+j] != m.data[j*n+i] {
				return nil, fmt.Errorf(
					"new distance matrix: asymmetric pair %d <-> %d (%v vs %v): %w",
					a, sorted[j], m.data[i*n+j], m.data[j*n+i], ErrInvalidInput,
				)
			}
		}
	}

	return m, nil
}

// Len returns the number of locations.
func (m *DistanceMatrix) Len() int { return len(m.ids) }

// IDs returns the location ids in ascending order.
func (m *DistanceMatrix) IDs() []LocationID { return slices.Clone(m.ids) }

// Has reports whether id is one of the matrix locations.
func (m *DistanceMatrix) Has(id LocationID) bool {
	_, ok := m.index[id]
	return ok
}

// At returns the distance between a and b.
func (m *DistanceMatrix) At(a, b LocationID) (float64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, fmt.Errorf("distance matrix at: %d: %w", a, ErrUnknownLocation)
	}
	j, ok := m.index[b]
	if !ok {
		return 0, fmt.Errorf("distance matrix at: %d: %w", b, ErrUnknownLocation)
	}
	return m.data[i*len(m.ids)+j], nil
}

// Row returns the distances from id to every location, ordered as IDs().
func (m *DistanceMatrix) Row(id LocationID) ([]float64, error) {
	i, ok := m.index[id]
	if !ok {
		return nil, fmt.Errorf("distance matrix row: %d: %w", id, ErrUnknownLocation)
	}
	n := len(m.ids)
	return slices.Clone(m.data[i*n : (i+1)*n]), nil
}

// Rows returns a copy of the full table ordered as IDs() on both axes.
func (m *DistanceMatrix) Rows() [][]float64 {
	n := len(m.ids)
	out := make([][]float64, n)
	for i := range n {
		out[i] = slices.Clone(m.data[i*n : (i+1)*n])
	}
	return out
}

// Equal reports whether both matrices cover the same ids with identical distances.
func (m *DistanceMatrix) Equal(other *DistanceMatrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	return slices.Equal(m.ids, other.ids) && slices.Equal(m.data, other.data)
}

package dto

import (
	"bytes"
	"encoding/json"
)

// Toll for one vehicle class, rendered as its own column.
type VehicleToll struct {
	Class string
	Toll  float64
}

// TolledRecordResponse renders flat: id_start, id_end, distance, one column
// per vehicle class in rate-table order, then the timing columns.
type TolledRecordResponse struct {
	IDStart   int64
	IDEnd     int64
	Distance  float64
	Tolls     []VehicleToll
	StartDay  string
	StartTime string
	EndDay    string
	EndTime   string
	Window    string
}

type column struct {
	name  string
	value any
}

func (r TolledRecordResponse) MarshalJSON() ([]byte, error) {
	cols := make([]column, 0, 8+len(r.Tolls))
	cols = append(cols,
		column{"id_start", r.IDStart},
		column{"id_end", r.IDEnd},
		column{"distance", r.Distance},
	)
	for _, t := range r.Tolls {
		cols = append(cols, column{t.Class, t.Toll})
	}
	cols = append(cols,
		column{"start_day", r.StartDay},
		column{"start_time", r.StartTime},
		column{"end_day", r.EndDay},
		column{"end_time", r.EndTime},
		column{"window", r.Window},
	)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

type ListTolledRecordResponse struct {
	Seed    uint64                 `json:"seed"`
	Records []TolledRecordResponse `json:"records"`
}

type PairCoverageResponse struct {
	IDStart         int64   `json:"id_start"`
	IDEnd           int64   `json:"id_end"`
	DurationSeconds float64 `json:"duration_seconds"`
	StartDays       int     `json:"start_days"`
	EndDays         int     `json:"end_days"`
	Incomplete      bool    `json:"incomplete"`
}

type ListPairCoverageResponse struct {
	Seed       uint64                 `json:"seed"`
	Incomplete int                    `json:"incomplete"`
	Pairs      []PairCoverageResponse `json:"pairs"`
}

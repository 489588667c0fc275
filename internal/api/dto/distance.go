package dto

type DistanceMatrixResponse struct {
	IDs  []int64     `json:"ids"`
	Rows [][]float64 `json:"rows"`
}

type DistanceRecordResponse struct {
	IDStart  int64   `json:"id_start"`
	IDEnd    int64   `json:"id_end"`
	Distance float64 `json:"distance"`
}

type ListDistanceRecordResponse struct {
	Records []DistanceRecordResponse `json:"records"`
}

type NeighborResponse struct {
	ReferenceID int64   `json:"reference_id"`
	Ratio       float64 `json:"ratio"`
	IDs         []int64 `json:"ids"`
}

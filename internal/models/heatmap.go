package models

// HeatmapPoint represents a single cell of the density map
type HeatmapPoint struct {
	Lat       float64 `json:"lat"`       // Cell center latitude
	Lng       float64 `json:"lng"`       // Cell center longitude
	Intensity float64 `json:"intensity"` // Normalized 0-1
	Value     float64 `json:"value"`     // Summed weight of the cell
	Count     int     `json:"count"`     // Vehicles in the cell
	CellID    string  `json:"cell_id"`   // s2 cell token
}

// HeatmapResponse represents the density map payload
type HeatmapResponse struct {
	Points    []HeatmapPoint `json:"points"`
	Count     int            `json:"count"`
	MaxValue  float64        `json:"max_value"`
	MinValue  float64        `json:"min_value"`
	Metric    string         `json:"metric"` // Column used as weight
	CellLevel int            `json:"cell_level"`
}

package models

// Summary represents the KPI metrics of a filtered view
type Summary struct {
	TotalVehicles int     `json:"total_vehicles"`
	UniqueMakes   int     `json:"unique_makes"`
	AvgRange      float64 `json:"avg_range"`
	AvgPrice      float64 `json:"avg_price"`
	AvgRangeLabel string  `json:"avg_range_label"` // Truncated integer, e.g. "215"
	AvgPriceLabel string  `json:"avg_price_label"` // Truncated integer with separators, e.g. "55,000"
	TotalLabel    string  `json:"total_label"`     // e.g. "12,345"
}

// ValueCount represents one grouped projection entry (label and row count)
type ValueCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// RecordsPage represents one page of the raw data tab
type RecordsPage struct {
	Records []Vehicle `json:"records"`
	Total   int       `json:"total"`
	Offset  int       `json:"offset"`
	Limit   int       `json:"limit"`
}

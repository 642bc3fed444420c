package models

// DashboardQuery represents the raw widget state sent by the dashboard form or API callers.
// Slice fields are repeatable query keys; bounds are pointers so "not provided" stays distinguishable.
type DashboardQuery struct {
	Makes    []string `form:"make"`
	Models   []string `form:"model"`
	EVTypes  []string `form:"type"`
	Counties []string `form:"county"`
	Cities   []string `form:"city"`
	YearMin  *int     `form:"yearMin"`
	YearMax  *int     `form:"yearMax"`
	RangeMin *int     `form:"rangeMin"`
	RangeMax *int     `form:"rangeMax"`
	PriceMin *int     `form:"priceMin"`
	PriceMax *int     `form:"priceMax"`
	Applied  bool     `form:"applied"` // Form submitted: absent selections mean "none selected"
}

// RecordsQuery represents paging parameters for the raw data tab
type RecordsQuery struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

// IntBounds is a closed integer interval
type IntBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterOptions represents every option and default the sidebar widgets offer
type FilterOptions struct {
	Manufacturers []string `json:"manufacturers"`
	Models        []string `json:"models"` // Narrowed by the selected manufacturers
	EVTypes       []string `json:"ev_types"`
	Counties      []string `json:"counties"`
	Cities        []string `json:"cities"`

	YearBounds  IntBounds `json:"year_bounds"`
	RangeBounds IntBounds `json:"range_bounds"`
	PriceBounds IntBounds `json:"price_bounds"`

	Selected Selection `json:"selected"`
}

// Selection represents the effective widget selection after defaults are applied
type Selection struct {
	Makes    []string  `json:"makes"`
	Models   []string  `json:"models"`
	EVTypes  []string  `json:"ev_types"`
	Counties []string  `json:"counties"`
	Cities   []string  `json:"cities"`
	Years    IntBounds `json:"years"`
	Range    IntBounds `json:"range"`
	Price    IntBounds `json:"price"`
}

package models

// Vehicle represents one registration row of the EV population dataset
type Vehicle struct {
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	ModelYear     int     `json:"model_year"`
	EVType        string  `json:"ev_type"`             // Battery Electric Vehicle (BEV), Plug-in Hybrid Electric Vehicle (PHEV)
	County        string  `json:"county,omitempty"`    // Empty when missing
	City          string  `json:"city,omitempty"`      // Empty when missing
	ElectricRange float64 `json:"electric_range"`      // Miles, missing coerced to 0
	BaseMSRP      float64 `json:"base_msrp"`           // Currency units, missing coerced to 0
	Latitude      float64 `json:"latitude,omitempty"`  // Valid only when HasLocation
	Longitude     float64 `json:"longitude,omitempty"` // Valid only when HasLocation
	HasLocation   bool    `json:"has_location"`
}

// Source column names
const (
	ColumnMake          = "Make"
	ColumnModel         = "Model"
	ColumnModelYear     = "Model Year"
	ColumnEVType        = "Electric Vehicle Type"
	ColumnCounty        = "County"
	ColumnCity          = "City"
	ColumnElectricRange = "Electric Range"
	ColumnBaseMSRP      = "Base MSRP"
	ColumnLatitude      = "Latitude"
	ColumnLongitude     = "Longitude"
)

// RequiredColumns lists the columns every input file must carry
var RequiredColumns = []string{
	ColumnMake,
	ColumnModel,
	ColumnModelYear,
	ColumnEVType,
	ColumnCounty,
	ColumnCity,
	ColumnElectricRange,
	ColumnBaseMSRP,
}

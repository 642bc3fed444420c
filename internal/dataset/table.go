package dataset

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/jengzang/ev-dashboard-go/internal/models"
)

// Bounds holds the observed extremes of the slider-backed columns
type Bounds struct {
	Years models.IntBounds
	Range models.IntBounds
	Price models.IntBounds
}

// Table is the loaded dataset. It is never modified after load; every
// derived value (views, aggregates) is computed into new memory.
type Table struct {
	frame  dataframe.DataFrame
	rows   []models.Vehicle
	hasGeo bool
	bounds Bounds
}

func newTable(df dataframe.DataFrame) *Table {
	t := &Table{frame: df}

	names := make(map[string]bool)
	for _, n := range df.Names() {
		names[n] = true
	}
	t.hasGeo = names[models.ColumnLatitude] && names[models.ColumnLongitude]

	makes := df.Col(models.ColumnMake)
	modelNames := df.Col(models.ColumnModel)
	years := df.Col(models.ColumnModelYear)
	types := df.Col(models.ColumnEVType)
	counties := df.Col(models.ColumnCounty)
	cities := df.Col(models.ColumnCity)
	ranges := df.Col(models.ColumnElectricRange)
	prices := df.Col(models.ColumnBaseMSRP)

	var lats, lngs series.Series
	if t.hasGeo {
		lats = df.Col(models.ColumnLatitude)
		lngs = df.Col(models.ColumnLongitude)
	}

	n := df.Nrow()
	t.rows = make([]models.Vehicle, n)
	for i := 0; i < n; i++ {
		v := models.Vehicle{
			Make:   stringAt(makes, i),
			Model:  stringAt(modelNames, i),
			EVType: stringAt(types, i),
			County: stringAt(counties, i),
			City:   stringAt(cities, i),
		}
		if year, ok := floatAt(years, i); ok {
			v.ModelYear = int(year)
		}
		v.ElectricRange, _ = floatAt(ranges, i)
		v.BaseMSRP, _ = floatAt(prices, i)

		if t.hasGeo {
			lat, latOK := floatAt(lats, i)
			lng, lngOK := floatAt(lngs, i)
			if latOK && lngOK {
				v.Latitude, v.Longitude, v.HasLocation = lat, lng, true
			}
		}
		t.rows[i] = v
	}

	t.bounds = computeBounds(t.rows)
	return t
}

func computeBounds(rows []models.Vehicle) Bounds {
	var b Bounds
	if len(rows) == 0 {
		return b
	}

	yearSeen := false
	minRange, maxRange := math.Inf(1), math.Inf(-1)
	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	for _, v := range rows {
		if v.ModelYear != 0 {
			if !yearSeen {
				b.Years = models.IntBounds{Min: v.ModelYear, Max: v.ModelYear}
				yearSeen = true
			}
			if v.ModelYear < b.Years.Min {
				b.Years.Min = v.ModelYear
			}
			if v.ModelYear > b.Years.Max {
				b.Years.Max = v.ModelYear
			}
		}
		minRange = math.Min(minRange, v.ElectricRange)
		maxRange = math.Max(maxRange, v.ElectricRange)
		minPrice = math.Min(minPrice, v.BaseMSRP)
		maxPrice = math.Max(maxPrice, v.BaseMSRP)
	}

	b.Range = models.IntBounds{Min: int(math.Floor(minRange)), Max: int(math.Ceil(maxRange))}
	b.Price = models.IntBounds{Min: int(math.Floor(minPrice)), Max: int(math.Ceil(maxPrice))}
	return b
}

// Len returns the number of records
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th record
func (t *Table) Row(i int) models.Vehicle {
	return t.rows[i]
}

// Rows returns the records. The slice is shared and must not be modified.
func (t *Table) Rows() []models.Vehicle {
	return t.rows
}

// Columns returns the source column names in file order
func (t *Table) Columns() []string {
	return t.frame.Names()
}

// HasGeo reports whether the source carries Latitude and Longitude columns
func (t *Table) HasGeo() bool {
	return t.hasGeo
}

// Bounds returns the observed min/max of the year, range and price columns
func (t *Table) Bounds() Bounds {
	return t.bounds
}

// All returns a view over every record
func (t *Table) All() *View {
	index := make([]int, len(t.rows))
	for i := range index {
		index[i] = i
	}
	return NewView(t, index)
}

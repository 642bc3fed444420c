package dataset

import (
	"sort"

	"github.com/go-gota/gota/dataframe"

	"github.com/jengzang/ev-dashboard-go/internal/models"
)

// View is a read-only selection of table rows, kept in table order
type View struct {
	table *Table
	index []int
}

// NewView creates a view over the given row positions of t
func NewView(t *Table, index []int) *View {
	idx := make([]int, len(index))
	copy(idx, index)
	return &View{table: t, index: idx}
}

// Table returns the table the view was taken from
func (v *View) Table() *Table {
	return v.table
}

// Len returns the number of rows in the view
func (v *View) Len() int {
	return len(v.index)
}

// Row returns the i-th row of the view
func (v *View) Row(i int) models.Vehicle {
	return v.table.rows[v.index[i]]
}

// Rows returns a copy of the view rows
func (v *View) Rows() []models.Vehicle {
	rows := make([]models.Vehicle, len(v.index))
	for i, idx := range v.index {
		rows[i] = v.table.rows[idx]
	}
	return rows
}

// Index returns a copy of the table positions selected by the view
func (v *View) Index() []int {
	idx := make([]int, len(v.index))
	copy(idx, v.index)
	return idx
}

// Frame returns every source column restricted to the view rows
func (v *View) Frame() dataframe.DataFrame {
	return v.table.frame.Subset(v.Index())
}

// SortedByYearDesc returns the view rows ordered by model year, newest first.
// Rows of the same year keep table order.
func (v *View) SortedByYearDesc() []models.Vehicle {
	rows := v.Rows()
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ModelYear > rows[j].ModelYear
	})
	return rows
}

// Makes returns the manufacturer column of the view
func (v *View) Makes() []string {
	out := make([]string, len(v.index))
	for i, idx := range v.index {
		out[i] = v.table.rows[idx].Make
	}
	return out
}

// Ranges returns the electric range column of the view
func (v *View) Ranges() []float64 {
	out := make([]float64, len(v.index))
	for i, idx := range v.index {
		out[i] = v.table.rows[idx].ElectricRange
	}
	return out
}

// Prices returns the base MSRP column of the view
func (v *View) Prices() []float64 {
	out := make([]float64, len(v.index))
	for i, idx := range v.index {
		out[i] = v.table.rows[idx].BaseMSRP
	}
	return out
}

// Strings projects one string attribute of every row
func (v *View) Strings(field func(models.Vehicle) string) []string {
	out := make([]string, len(v.index))
	for i, idx := range v.index {
		out[i] = field(v.table.rows[idx])
	}
	return out
}

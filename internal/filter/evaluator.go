package filter

import (
	"github.com/jengzang/ev-dashboard-go/internal/dataset"
)

// Apply returns the view of t whose rows satisfy every condition of p.
// The table is not modified; an empty result is a valid view.
func Apply(t *dataset.Table, p Params) *dataset.View {
	conds := p.Conditions()

	index := make([]int, 0, t.Len())
	for i, row := range t.Rows() {
		if matchAll(row, conds) {
			index = append(index, i)
		}
	}

	return dataset.NewView(t, index)
}

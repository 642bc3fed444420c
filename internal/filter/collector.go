package filter

import (
	"strings"

	"github.com/jengzang/ev-dashboard-go/internal/dataset"
	"github.com/jengzang/ev-dashboard-go/internal/models"
	"github.com/jengzang/ev-dashboard-go/internal/stats"
)

// Default selections shown before the user touches a widget
var (
	DefaultMakes = []string{"TESLA", "FORD", "CHEVROLET", "NISSAN", "BMW"}
	DefaultYears = models.IntBounds{Min: 2015, Max: 2025}
	DefaultRange = models.IntBounds{Min: 0, Max: 400}
	DefaultPrice = models.IntBounds{Min: 0, Max: 150000}
)

// BoundsInput is a user-provided interval; nil ends are not provided
type BoundsInput struct {
	Min *int
	Max *int
}

// WidgetState is the raw state of the sidebar widgets.
// A nil slice means the widget was not provided and its default applies;
// a non-nil empty slice means the user cleared the selection.
type WidgetState struct {
	Makes    []string
	Models   []string
	EVTypes  []string
	Counties []string
	Cities   []string
	Years    BoundsInput
	Range    BoundsInput
	Price    BoundsInput
}

// StateFromQuery converts bound query parameters into widget state.
// A key given with only blank values clears that selection.
func StateFromQuery(q models.DashboardQuery) WidgetState {
	sel := func(values []string) []string {
		cleaned := cleanSelection(values)
		if cleaned == nil && (q.Applied || values != nil) {
			return []string{}
		}
		return cleaned
	}

	return WidgetState{
		Makes:    sel(q.Makes),
		Models:   sel(q.Models),
		EVTypes:  sel(q.EVTypes),
		Counties: sel(q.Counties),
		Cities:   sel(q.Cities),
		Years:    BoundsInput{Min: q.YearMin, Max: q.YearMax},
		Range:    BoundsInput{Min: q.RangeMin, Max: q.RangeMax},
		Price:    BoundsInput{Min: q.PriceMin, Max: q.PriceMax},
	}
}

func cleanSelection(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Options returns the widget options for the given manufacturer selection.
// Models are narrowed to the selected manufacturers; every other option
// list is independent of the selection.
func Options(t *dataset.Table, selectedMakes []string) models.FilterOptions {
	rows := t.Rows()
	makes := make([]string, len(rows))
	types := make([]string, len(rows))
	counties := make([]string, len(rows))
	cities := make([]string, len(rows))
	for i, v := range rows {
		makes[i] = v.Make
		types[i] = v.EVType
		counties[i] = v.County
		cities[i] = v.City
	}

	b := t.Bounds()
	return models.FilterOptions{
		Manufacturers: stats.Distinct(makes),
		Models:        ModelOptions(t, selectedMakes),
		EVTypes:       stats.DistinctInOrder(types),
		Counties:      stats.Distinct(counties),
		Cities:        stats.Distinct(cities),
		YearBounds:    b.Years,
		RangeBounds:   b.Range,
		PriceBounds:   b.Price,
	}
}

// ModelOptions returns the sorted distinct models, restricted to the
// selected manufacturers when any are selected
func ModelOptions(t *dataset.Table, selectedMakes []string) []string {
	makes := RestrictTo(selectedMakes...)

	var names []string
	for _, v := range t.Rows() {
		if makes.Allows(v.Make) {
			names = append(names, v.Model)
		}
	}
	return stats.Distinct(names)
}

// Collect maps widget state to filter parameters. The returned options
// carry the effective selection with defaults applied.
func Collect(t *dataset.Table, state WidgetState) (Params, models.FilterOptions) {
	allMakes := Options(t, nil).Manufacturers

	makes := state.Makes
	if makes == nil {
		makes = intersect(DefaultMakes, allMakes)
	}

	opts := Options(t, makes)

	// Models no longer offered drop out of the displayed selection but still
	// restrict the view, so a stale model yields no rows instead of all of them
	selectedModels := intersect(state.Models, opts.Models)
	modelFilter := RestrictTo(state.Models...)

	// Selecting every offered type, the default, does not restrict the view,
	// so rows with a missing type stay in
	evTypes := state.EVTypes
	if evTypes == nil {
		evTypes = opts.EVTypes
	}
	evTypeFilter := RestrictTo(evTypes...)
	if state.EVTypes == nil || (len(opts.EVTypes) > 0 && len(intersect(opts.EVTypes, evTypes)) == len(opts.EVTypes)) {
		evTypeFilter = AnyValue()
	}

	b := t.Bounds()
	years := resolveBounds(state.Years, DefaultYears, b.Years)
	rng := resolveBounds(state.Range, DefaultRange, b.Range)
	price := resolveBounds(state.Price, DefaultPrice, b.Price)

	opts.Selected = models.Selection{
		Makes:    nonNil(makes),
		Models:   nonNil(selectedModels),
		EVTypes:  nonNil(evTypes),
		Counties: nonNil(state.Counties),
		Cities:   nonNil(state.Cities),
		Years:    years,
		Range:    rng,
		Price:    price,
	}

	params := Params{
		Makes:    RestrictTo(makes...),
		Models:   modelFilter,
		Years:    RestrictToInterval(float64(years.Min), float64(years.Max)),
		EVTypes:  evTypeFilter,
		Counties: RestrictTo(state.Counties...),
		Cities:   RestrictTo(state.Cities...),
		Range:    RestrictToInterval(float64(rng.Min), float64(rng.Max)),
		Price:    RestrictToInterval(float64(price.Min), float64(price.Max)),
	}

	return params, opts
}

// resolveBounds fills missing ends from the default and clamps both ends
// into the observed data bounds
func resolveBounds(in BoundsInput, def, data models.IntBounds) models.IntBounds {
	out := def
	if in.Min != nil {
		out.Min = *in.Min
	}
	if in.Max != nil {
		out.Max = *in.Max
	}
	if out.Min > out.Max {
		out.Min, out.Max = out.Max, out.Min
	}

	out.Min = clamp(out.Min, data.Min, data.Max)
	out.Max = clamp(out.Max, data.Min, data.Max)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// intersect keeps the values of want present in have, preserving want order
func intersect(want, have []string) []string {
	if len(want) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(have))
	for _, h := range have {
		allowed[h] = struct{}{}
	}

	var out []string
	for _, w := range want {
		if _, ok := allowed[w]; ok {
			out = append(out, w)
		}
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

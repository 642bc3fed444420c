package filter

import (
	"sort"

	"github.com/jengzang/ev-dashboard-go/internal/models"
)

// Dimension names
const (
	DimensionMake   = "make"
	DimensionModel  = "model"
	DimensionYear   = "year"
	DimensionEVType = "ev_type"
	DimensionCounty = "county"
	DimensionCity   = "city"
	DimensionRange  = "electric_range"
	DimensionPrice  = "base_msrp"
)

// SetFilter is either "no restriction" (the zero value) or a restriction
// to a fixed set of values.
type SetFilter struct {
	values map[string]struct{}
}

// AnyValue returns a SetFilter that lets every value through
func AnyValue() SetFilter {
	return SetFilter{}
}

// RestrictTo returns a SetFilter admitting only the given values.
// An empty selection means no restriction.
func RestrictTo(values ...string) SetFilter {
	if len(values) == 0 {
		return SetFilter{}
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return SetFilter{values: set}
}

// Restricted reports whether the filter narrows the dimension
func (f SetFilter) Restricted() bool {
	return f.values != nil
}

// Allows reports whether v passes the filter
func (f SetFilter) Allows(v string) bool {
	if f.values == nil {
		return true
	}
	_, ok := f.values[v]
	return ok
}

// Values returns the admitted values in sorted order, nil when unrestricted
func (f SetFilter) Values() []string {
	if f.values == nil {
		return nil
	}
	out := make([]string, 0, len(f.values))
	for v := range f.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// IntervalFilter is either "no restriction" (the zero value) or a closed
// interval [Low, High] inclusive of both bounds.
type IntervalFilter struct {
	restricted bool
	low, high  float64
}

// AnyNumber returns an IntervalFilter that lets every value through
func AnyNumber() IntervalFilter {
	return IntervalFilter{}
}

// RestrictToInterval returns an IntervalFilter admitting low <= x <= high.
// Reversed bounds are swapped.
func RestrictToInterval(low, high float64) IntervalFilter {
	if low > high {
		low, high = high, low
	}
	return IntervalFilter{restricted: true, low: low, high: high}
}

// Restricted reports whether the filter narrows the dimension
func (f IntervalFilter) Restricted() bool {
	return f.restricted
}

// Allows reports whether x lies within the interval
func (f IntervalFilter) Allows(x float64) bool {
	if !f.restricted {
		return true
	}
	return x >= f.low && x <= f.high
}

// Bounds returns the interval; ok is false when unrestricted
func (f IntervalFilter) Bounds() (low, high float64, ok bool) {
	return f.low, f.high, f.restricted
}

// Params is an immutable snapshot of every filter dimension
type Params struct {
	Makes    SetFilter
	Models   SetFilter
	Years    IntervalFilter
	EVTypes  SetFilter
	Counties SetFilter
	Cities   SetFilter
	Range    IntervalFilter
	Price    IntervalFilter
}

// Condition is the per-row predicate of one active dimension
type Condition struct {
	Dimension string
	Match     func(models.Vehicle) bool
}

// Conditions returns the predicates of every restricted dimension.
// Unrestricted dimensions contribute nothing.
func (p Params) Conditions() []Condition {
	var conds []Condition

	addSet := func(dim string, f SetFilter, field func(models.Vehicle) string) {
		if !f.Restricted() {
			return
		}
		conds = append(conds, Condition{
			Dimension: dim,
			Match:     func(v models.Vehicle) bool { return f.Allows(field(v)) },
		})
	}
	addInterval := func(dim string, f IntervalFilter, field func(models.Vehicle) float64) {
		if !f.Restricted() {
			return
		}
		conds = append(conds, Condition{
			Dimension: dim,
			Match:     func(v models.Vehicle) bool { return f.Allows(field(v)) },
		})
	}

	addSet(DimensionMake, p.Makes, func(v models.Vehicle) string { return v.Make })
	addSet(DimensionModel, p.Models, func(v models.Vehicle) string { return v.Model })
	addInterval(DimensionYear, p.Years, func(v models.Vehicle) float64 { return float64(v.ModelYear) })
	addSet(DimensionEVType, p.EVTypes, func(v models.Vehicle) string { return v.EVType })
	addSet(DimensionCounty, p.Counties, func(v models.Vehicle) string { return v.County })
	addSet(DimensionCity, p.Cities, func(v models.Vehicle) string { return v.City })
	addInterval(DimensionRange, p.Range, func(v models.Vehicle) float64 { return v.ElectricRange })
	addInterval(DimensionPrice, p.Price, func(v models.Vehicle) float64 { return v.BaseMSRP })

	return conds
}

// Matches reports whether v satisfies every active condition
func (p Params) Matches(v models.Vehicle) bool {
	return matchAll(v, p.Conditions())
}

func matchAll(v models.Vehicle, conds []Condition) bool {
	for _, c := range conds {
		if !c.Match(v) {
			return false
		}
	}
	return true
}

package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/ev-dashboard-go/internal/dataset"
	"github.com/jengzang/ev-dashboard-go/internal/models"
)

const fleetCSV = `Make,Model,Model Year,Electric Vehicle Type,County,City,Electric Range,Base MSRP
TESLA,MODEL Y,2022,Battery Electric Vehicle (BEV),King,Seattle,300,55000
FORD,F-150,2023,Plug-in Hybrid Electric Vehicle (PHEV),Pierce,Tacoma,30,40000
TESLA,MODEL 3,2019,Battery Electric Vehicle (BEV),King,Bellevue,220,39990
NISSAN,LEAF,2013,Battery Electric Vehicle (BEV),Snohomish,Everett,75,28800
KIA,NIRO,2021,Plug-in Hybrid Electric Vehicle (PHEV),,Yakima,26,0
BMW,I3,2017,Battery Electric Vehicle (BEV),King,Seattle,114,44450
`

func loadFleet(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.Read(strings.NewReader(fleetCSV))
	require.NoError(t, err)
	return table
}

func intPtr(v int) *int { return &v }

func makesOf(v *dataset.View) []string {
	return v.Makes()
}

func TestSetFilter(t *testing.T) {
	assert.False(t, AnyValue().Restricted())
	assert.True(t, AnyValue().Allows("anything"))

	empty := RestrictTo()
	assert.False(t, empty.Restricted(), "empty selection is no restriction")
	assert.True(t, empty.Allows("TESLA"))

	f := RestrictTo("TESLA", "FORD")
	assert.True(t, f.Restricted())
	assert.True(t, f.Allows("FORD"))
	assert.False(t, f.Allows("BMW"))
	assert.Equal(t, []string{"FORD", "TESLA"}, f.Values())
}

func TestIntervalFilter(t *testing.T) {
	assert.True(t, AnyNumber().Allows(-1e9))

	f := RestrictToInterval(10, 20)
	assert.True(t, f.Allows(10), "low bound inclusive")
	assert.True(t, f.Allows(20), "high bound inclusive")
	assert.False(t, f.Allows(9.99))
	assert.False(t, f.Allows(20.01))

	low, high, ok := RestrictToInterval(20, 10).Bounds()
	assert.True(t, ok)
	assert.Equal(t, 10.0, low)
	assert.Equal(t, 20.0, high)
}

func TestApplySingleManufacturer(t *testing.T) {
	table, err := dataset.Read(strings.NewReader(`Make,Model,Model Year,Electric Vehicle Type,County,City,Electric Range,Base MSRP
TESLA,MODEL Y,2022,BEV,King,Seattle,300,55000
FORD,F-150,2023,PHEV,Pierce,Tacoma,30,40000
`))
	require.NoError(t, err)

	v := Apply(table, Params{Makes: RestrictTo("TESLA")})

	require.Equal(t, 1, v.Len())
	assert.Equal(t, "MODEL Y", v.Row(0).Model)
}

func TestApplyEmptySetEqualsNoRestriction(t *testing.T) {
	table := loadFleet(t)

	unrestricted := Apply(table, Params{})
	empty := Apply(table, Params{Makes: RestrictTo(), Counties: RestrictTo(), EVTypes: RestrictTo()})

	assert.Equal(t, table.Len(), unrestricted.Len())
	assert.Equal(t, unrestricted.Index(), empty.Index())
}

func TestApplyEveryRowSatisfiesConditions(t *testing.T) {
	table := loadFleet(t)

	cases := []struct {
		name   string
		params Params
		makes  []string
	}{
		{"make", Params{Makes: RestrictTo("TESLA", "BMW")}, []string{"TESLA", "TESLA", "BMW"}},
		{"county", Params{Counties: RestrictTo("King")}, []string{"TESLA", "TESLA", "BMW"}},
		{"year", Params{Years: RestrictToInterval(2019, 2022)}, []string{"TESLA", "TESLA", "KIA"}},
		{"range", Params{Range: RestrictToInterval(30, 114)}, []string{"FORD", "NISSAN", "BMW"}},
		{"price", Params{Price: RestrictToInterval(0, 30000)}, []string{"NISSAN", "KIA"}},
		{"ev type", Params{EVTypes: RestrictTo("Plug-in Hybrid Electric Vehicle (PHEV)")}, []string{"FORD", "KIA"}},
		{"combined", Params{Makes: RestrictTo("TESLA"), Cities: RestrictTo("Seattle")}, []string{"TESLA"}},
		{"no match", Params{Makes: RestrictTo("RIVIAN")}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := Apply(table, tc.params)

			assert.LessOrEqual(t, v.Len(), table.Len())
			for _, row := range v.Rows() {
				assert.True(t, tc.params.Matches(row), "%+v", row)
			}
			if tc.makes == nil {
				assert.Equal(t, 0, v.Len())
				return
			}
			assert.Equal(t, tc.makes, makesOf(v))
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	table := loadFleet(t)
	params := Params{Makes: RestrictTo("TESLA", "FORD"), Price: RestrictToInterval(0, 50000)}

	first := Apply(table, params)
	second := Apply(table, params)

	assert.Equal(t, first.Index(), second.Index())
	assert.Equal(t, 6, table.Len(), "table is not modified")
}

func TestConditionsSkipUnrestrictedDimensions(t *testing.T) {
	assert.Empty(t, Params{}.Conditions())

	conds := Params{Makes: RestrictTo("TESLA"), Range: RestrictToInterval(0, 10)}.Conditions()
	require.Len(t, conds, 2)
	assert.Equal(t, DimensionMake, conds[0].Dimension)
	assert.Equal(t, DimensionRange, conds[1].Dimension)
}

func TestOptions(t *testing.T) {
	table := loadFleet(t)
	opts := Options(table, nil)

	assert.Equal(t, []string{"BMW", "FORD", "KIA", "NISSAN", "TESLA"}, opts.Manufacturers)
	assert.Equal(t, []string{"Battery Electric Vehicle (BEV)", "Plug-in Hybrid Electric Vehicle (PHEV)"}, opts.EVTypes)
	assert.Equal(t, []string{"King", "Pierce", "Snohomish"}, opts.Counties)
	assert.Equal(t, []string{"Bellevue", "Everett", "Seattle", "Tacoma", "Yakima"}, opts.Cities)
	assert.Equal(t, models.IntBounds{Min: 2013, Max: 2023}, opts.YearBounds)
	assert.Equal(t, models.IntBounds{Min: 26, Max: 300}, opts.RangeBounds)
	assert.Equal(t, models.IntBounds{Min: 0, Max: 55000}, opts.PriceBounds)
}

func TestModelOptionsNarrowAndWiden(t *testing.T) {
	table := loadFleet(t)

	all := ModelOptions(table, nil)
	assert.Equal(t, []string{"F-150", "I3", "LEAF", "MODEL 3", "MODEL Y", "NIRO"}, all)

	narrowed := ModelOptions(table, []string{"TESLA"})
	assert.Equal(t, []string{"MODEL 3", "MODEL Y"}, narrowed)

	assert.Equal(t, all, ModelOptions(table, []string{}), "clearing the selection widens again")
}

func TestCollectDefaults(t *testing.T) {
	table := loadFleet(t)

	params, opts := Collect(table, WidgetState{})
	sel := opts.Selected

	assert.Equal(t, []string{"TESLA", "FORD", "NISSAN", "BMW"}, sel.Makes, "defaults limited to available makes")
	assert.Empty(t, sel.Models)
	assert.Equal(t, opts.EVTypes, sel.EVTypes)
	assert.Equal(t, models.IntBounds{Min: 2015, Max: 2023}, sel.Years)
	assert.Equal(t, models.IntBounds{Min: 26, Max: 300}, sel.Range)
	assert.Equal(t, models.IntBounds{Min: 0, Max: 55000}, sel.Price)
	assert.Equal(t, []string{"F-150", "I3", "LEAF", "MODEL 3", "MODEL Y"}, opts.Models)

	v := Apply(table, params)
	assert.Equal(t, []string{"TESLA", "FORD", "TESLA", "BMW"}, v.Makes())
}

func TestCollectUserSelection(t *testing.T) {
	table := loadFleet(t)

	state := WidgetState{
		Makes:  []string{"TESLA"},
		Models: []string{"MODEL 3", "LEAF"},
		Years:  BoundsInput{Min: intPtr(1990), Max: intPtr(2030)},
		Price:  BoundsInput{Min: intPtr(60000), Max: intPtr(10000)},
	}
	params, opts := Collect(table, state)

	assert.Equal(t, []string{"MODEL 3"}, opts.Selected.Models, "models of unselected makes drop out")
	assert.Equal(t, models.IntBounds{Min: 2013, Max: 2023}, opts.Selected.Years, "clamped to data bounds")
	assert.Equal(t, models.IntBounds{Min: 10000, Max: 55000}, opts.Selected.Price, "swapped and clamped")

	v := Apply(table, params)
	require.Equal(t, 1, v.Len())
	assert.Equal(t, "MODEL 3", v.Row(0).Model)
}

func TestCollectClearedSelections(t *testing.T) {
	table := loadFleet(t)

	state := WidgetState{Makes: []string{}, EVTypes: []string{}}
	params, opts := Collect(table, state)

	assert.Empty(t, opts.Selected.Makes)
	assert.False(t, params.Makes.Restricted())
	assert.False(t, params.EVTypes.Restricted())
	assert.Len(t, opts.Models, 6)
}

func TestCollectAllTypesKeepMissingType(t *testing.T) {
	table, err := dataset.Read(strings.NewReader(`Make,Model,Model Year,Electric Vehicle Type,County,City,Electric Range,Base MSRP
TESLA,MODEL Y,2022,BEV,King,Seattle,300,55000
FORD,F-150,2023,,Pierce,Tacoma,30,40000
KIA,NIRO,2021,PHEV,King,Yakima,26,30000
`))
	require.NoError(t, err)

	params, opts := Collect(table, WidgetState{Makes: []string{}})

	assert.Equal(t, []string{"BEV", "PHEV"}, opts.Selected.EVTypes, "every type is shown selected")
	assert.False(t, params.EVTypes.Restricted())
	assert.Equal(t, 3, Apply(table, params).Len())

	all, _ := Collect(table, WidgetState{Makes: []string{}, EVTypes: []string{"PHEV", "BEV"}})
	assert.False(t, all.EVTypes.Restricted())
	assert.Equal(t, 3, Apply(table, all).Len())

	narrowed, _ := Collect(table, WidgetState{Makes: []string{}, EVTypes: []string{"BEV"}})
	assert.Equal(t, []string{"TESLA"}, Apply(table, narrowed).Makes())
}

func TestCollectStaleModelSelection(t *testing.T) {
	table := loadFleet(t)

	params, opts := Collect(table, WidgetState{Makes: []string{"TESLA"}, Models: []string{"F-150"}})

	assert.Empty(t, opts.Selected.Models, "model not offered for the selected make")
	assert.True(t, params.Models.Restricted())
	assert.Equal(t, 0, Apply(table, params).Len())
}

func TestStateFromQuery(t *testing.T) {
	q := models.DashboardQuery{Makes: []string{" TESLA ", ""}, YearMin: intPtr(2018)}
	state := StateFromQuery(q)

	assert.Equal(t, []string{"TESLA"}, state.Makes)
	assert.Nil(t, state.Models, "not provided")
	require.NotNil(t, state.Years.Min)
	assert.Equal(t, 2018, *state.Years.Min)
	assert.Nil(t, state.Years.Max)

	applied := StateFromQuery(models.DashboardQuery{Applied: true})
	assert.NotNil(t, applied.Makes)
	assert.Empty(t, applied.Makes, "submitted form without selection")

	cleared := StateFromQuery(models.DashboardQuery{Makes: []string{}, Counties: []string{""}})
	assert.NotNil(t, cleared.Makes)
	assert.Empty(t, cleared.Makes, "key given without values")
	assert.NotNil(t, cleared.Counties)
	assert.Empty(t, cleared.Counties)
	assert.Nil(t, cleared.Cities)
}

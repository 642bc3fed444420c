package dataset

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/jengzang/ev-dashboard-go/internal/models"
)

// ErrMissingColumn is returned when the input file lacks a required column
var ErrMissingColumn = errors.New("missing required column")

// naValues are the cell contents read as missing
var naValues = []string{"", "NA", "N/A", "NaN", "nan", "<nil>"}

// columnTypes pins the types of the columns the dashboard reads.
// Every other column keeps the type gota detects.
var columnTypes = map[string]series.Type{
	models.ColumnMake:          series.String,
	models.ColumnModel:         series.String,
	models.ColumnModelYear:     series.Int,
	models.ColumnEVType:        series.String,
	models.ColumnCounty:        series.String,
	models.ColumnCity:          series.String,
	models.ColumnElectricRange: series.Float,
	models.ColumnBaseMSRP:      series.Float,
	models.ColumnLatitude:      series.Float,
	models.ColumnLongitude:     series.Float,
}

// zeroFilledColumns are coerced to numbers with missing values replaced by 0
var zeroFilledColumns = []string{
	models.ColumnElectricRange,
	models.ColumnBaseMSRP,
}

// Load reads the dataset file at path
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	table, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return table, nil
}

// Read parses a comma-delimited dataset with a header row
func Read(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", df.Err)
	}

	if err := checkColumns(df.Names()); err != nil {
		return nil, err
	}

	for _, name := range zeroFilledColumns {
		var filled int
		df, filled = fillNumeric(df, name)
		if df.Err != nil {
			return nil, fmt.Errorf("failed to coerce %s: %w", name, df.Err)
		}
		if filled > 0 {
			log.Printf("Warning: %d missing or non-numeric %q values replaced by 0", filled, name)
		}
	}

	return newTable(df), nil
}

func checkColumns(names []string) error {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	var missing []string
	for _, required := range models.RequiredColumns {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// fillNumeric replaces NA and unparseable values of a float column with 0
// and reports how many were replaced
func fillNumeric(df dataframe.DataFrame, name string) (dataframe.DataFrame, int) {
	values := df.Col(name).Float()
	filled := 0
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = 0
			filled++
		}
	}
	return df.Mutate(series.New(values, series.Float, name)), filled
}

func stringAt(col series.Series, i int) string {
	e := col.Elem(i)
	if e.IsNA() {
		return ""
	}
	return strings.TrimSpace(e.String())
}

func floatAt(col series.Series, i int) (float64, bool) {
	e := col.Elem(i)
	if e.IsNA() {
		return 0, false
	}
	f := e.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jengzang/ev-dashboard-go/internal/dataset"
)

const exportCSV = `Make,Model,Model Year,Electric Vehicle Type,County,City,Electric Range,Base MSRP
TESLA,MODEL Y,2022,BEV,King,Seattle,300,55000
FORD,F-150,2023,PHEV,,Tacoma,30.5,40000
NISSAN,LEAF,2013,BEV,Snohomish,Everett,75,28800
`

func twoRowView(t *testing.T) *dataset.View {
	t.Helper()
	table, err := dataset.Read(strings.NewReader(exportCSV))
	require.NoError(t, err)
	return dataset.NewView(table, []int{0, 1})
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"csv": FormatCSV, "XLSX": FormatExcel, "excel": FormatExcel, " json ": FormatJSON} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("parquet")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "ev_data_export.csv", FormatCSV.FileName())
	assert.Equal(t, "ev_data_export.xlsx", FormatExcel.FileName())
	assert.Equal(t, "ev_data_export.json", FormatJSON.FileName())
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.Equal(t, "application/vnd.ms-excel", FormatExcel.ContentType())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
}

func TestExportCSV(t *testing.T) {
	payload, err := Export(twoRowView(t), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "ev_data_export.csv", payload.FileName)

	records, err := csv.NewReader(bytes.NewReader(payload.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Make", "Model", "Model Year", "Electric Vehicle Type", "County", "City", "Electric Range", "Base MSRP"}, records[0])
	assert.Equal(t, []string{"TESLA", "MODEL Y", "2022", "BEV", "King", "Seattle", "300", "55000"}, records[1])
	assert.Equal(t, []string{"FORD", "F-150", "2023", "PHEV", "", "Tacoma", "30.5", "40000"}, records[2])
}

func TestExportExcel(t *testing.T) {
	payload, err := Export(twoRowView(t), FormatExcel)
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.ms-excel", payload.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(payload.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Make", rows[0][0])
	assert.Equal(t, []string{"TESLA", "MODEL Y", "2022", "BEV", "King", "Seattle", "300", "55000"}, rows[1])
	assert.Equal(t, "FORD", rows[2][0])
	assert.Equal(t, "", rows[2][4], "missing county stays empty")
	assert.Equal(t, "30.5", rows[2][6])

	typ, err := f.GetCellType(SheetName, "H2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ, "prices are numeric cells")
}

func TestExportJSON(t *testing.T) {
	payload, err := Export(twoRowView(t), FormatJSON)
	require.NoError(t, err)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(payload.Data, &records))
	require.Len(t, records, 2)

	assert.Equal(t, "TESLA", records[0]["Make"])
	assert.Equal(t, 2022.0, records[0]["Model Year"])
	assert.Equal(t, 300.0, records[0]["Electric Range"])
	assert.Equal(t, 55000.0, records[0]["Base MSRP"])
	assert.Nil(t, records[1]["County"])
	assert.Contains(t, records[1], "County", "missing values are explicit nulls")

	// Keys keep the column order
	assert.True(t, strings.HasPrefix(string(payload.Data), `[{"Make":"TESLA","Model":"MODEL Y","Model Year":2022`))
}

func TestExportIsDeterministic(t *testing.T) {
	v := twoRowView(t)
	for _, f := range []Format{FormatCSV, FormatJSON} {
		first, err := Export(v, f)
		require.NoError(t, err)
		second, err := Export(v, f)
		require.NoError(t, err)
		assert.Equal(t, first.Data, second.Data, string(f))
	}
}

func TestExportEmptyView(t *testing.T) {
	table, err := dataset.Read(strings.NewReader(exportCSV))
	require.NoError(t, err)
	v := dataset.NewView(table, nil)

	payload, err := Export(v, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(payload.Data))

	payload, err = Export(v, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "Make,Model,Model Year,Electric Vehicle Type,County,City,Electric Range,Base MSRP\n", string(payload.Data))
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export(twoRowView(t), Format("parquet"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

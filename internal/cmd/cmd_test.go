package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cmdCSV = `Make,Model,Model Year,Electric Vehicle Type,County,City,Electric Range,Base MSRP
TESLA,MODEL Y,2022,BEV,King,Seattle,300,55000
FORD,F-150,2023,PHEV,Pierce,Tacoma,30,40000
TESLA,MODEL 3,2019,BEV,King,Bellevue,220,39990
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ev.csv")
	require.NoError(t, os.WriteFile(path, []byte(cmdCSV), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSummaryCommand(t *testing.T) {
	out, err := run(t, "summary", "--data", writeDataset(t), "--make", "TESLA")
	require.NoError(t, err)

	assert.Contains(t, out, "Manufacturers: TESLA")
	assert.Contains(t, out, "260 mi")
	assert.Contains(t, out, "$47,495")
	assert.Contains(t, out, "Top 10 Manufacturers")
}

func TestSummaryCommandNoMatch(t *testing.T) {
	out, err := run(t, "summary", "--data", writeDataset(t), "--make", "RIVIAN")
	require.NoError(t, err)
	assert.Contains(t, out, "No data for the current filters")
}

func TestSummaryCommandMissingFile(t *testing.T) {
	_, err := run(t, "summary", "--data", filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.json")

	_, err := run(t, "export", "--data", writeDataset(t), "--make", "FORD", "--format", "json", "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "F-150", records[0]["Model"])
}

func TestExportCommandUnknownFormat(t *testing.T) {
	_, err := run(t, "export", "--data", writeDataset(t), "--format", "pdf", "-o", filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err)
}

func TestExportCommandClearedMakes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ev.csv")
	require.NoError(t, os.WriteFile(path, []byte(cmdCSV+"KIA,NIRO,2021,PHEV,King,Yakima,26,30000\n"), 0o644))

	count := func(args ...string) int {
		target := filepath.Join(t.TempDir(), "out.json")
		_, err := run(t, append([]string{"export", "--data", path, "--format", "json", "-o", target}, args...)...)
		require.NoError(t, err)
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		var records []map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &records))
		return len(records)
	}

	assert.Equal(t, 3, count(), "default manufacturers leave KIA out")
	assert.Equal(t, 4, count("--make="), "cleared manufacturers restrict nothing")

	out, err := run(t, "summary", "--data", path, "--make=")
	require.NoError(t, err)
	assert.Contains(t, out, "Manufacturers: (any)")
}

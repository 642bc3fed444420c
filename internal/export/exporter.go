// Package export serializes a filtered view into download formats.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/jengzang/ev-dashboard-go/internal/dataset"
)

// ErrUnknownFormat is returned for an export format other than csv, xlsx or json
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export format
type Format string

// Supported formats
const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
	FormatJSON  Format = "json"
)

// SheetName is the single worksheet of spreadsheet exports
const SheetName = "Sheet1"

// Formats lists the formats in the order the dashboard offers them
var Formats = []Format{FormatCSV, FormatExcel, FormatJSON}

// Payload is a serialized export ready for download
type Payload struct {
	Format      Format
	FileName    string
	ContentType string
	Data        []byte
}

// ParseFormat resolves a user-supplied format name. "excel" is accepted for xlsx.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FileName returns the fixed download name of the format
func (f Format) FileName() string {
	return "ev_data_export." + string(f)
}

// Label returns the button label of the format
func (f Format) Label() string {
	switch f {
	case FormatCSV:
		return "CSV"
	case FormatExcel:
		return "Excel"
	case FormatJSON:
		return "JSON"
	}
	return strings.ToUpper(string(f))
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatExcel:
		return "application/vnd.ms-excel"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// Export serializes every source column of the view rows. The view is
// written as given; no filtering happens here.
func Export(v *dataset.View, f Format) (*Payload, error) {
	frame := v.Frame()
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to project view: %w", frame.Err)
	}

	var (
		data []byte
		err  error
	)
	switch f {
	case FormatCSV:
		data, err = writeCSV(frame)
	case FormatExcel:
		data, err = writeExcel(frame)
	case FormatJSON:
		data, err = writeJSON(frame)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", f, err)
	}

	return &Payload{
		Format:      f,
		FileName:    f.FileName(),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

// writeCSV writes a header row and one line per record, missing values empty
func writeCSV(df dataframe.DataFrame) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	names := df.Names()
	if err := w.Write(names); err != nil {
		return nil, err
	}

	cols := columns(df)
	record := make([]string, len(cols))
	for i := 0; i < df.Nrow(); i++ {
		for j, col := range cols {
			record[j] = cellText(col.Elem(i), col.Type())
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeExcel writes one sheet with a header row and typed cells
func writeExcel(df dataframe.DataFrame) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	names := df.Names()
	header := make([]interface{}, len(names))
	for i, n := range names {
		header[i] = n
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	cols := columns(df)
	row := make([]interface{}, len(cols))
	for i := 0; i < df.Nrow(); i++ {
		for j, col := range cols {
			row[j] = cellValue(col.Elem(i), col.Type())
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	for j := range names {
		colName, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, colName, colName, 18); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeJSON writes an array of records with keys in column order and
// missing values as null
func writeJSON(df dataframe.DataFrame) ([]byte, error) {
	names := df.Names()
	keys := make([][]byte, len(names))
	for i, n := range names {
		k, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}

	cols := columns(df)
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < df.Nrow(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range cols {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.Write(keys[j])
			buf.WriteByte(':')
			v, err := json.Marshal(cellValue(col.Elem(i), col.Type()))
			if err != nil {
				return nil, err
			}
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func columns(df dataframe.DataFrame) []series.Series {
	names := df.Names()
	cols := make([]series.Series, len(names))
	for i, n := range names {
		cols[i] = df.Col(n)
	}
	return cols
}

// cellText formats a cell for text output; floats use the shortest exact form
func cellText(e series.Element, t series.Type) string {
	if e.IsNA() {
		return ""
	}
	if t == series.Float {
		f := e.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return e.String()
}

// cellValue returns a typed value for spreadsheet and JSON cells, nil when missing
func cellValue(e series.Element, t series.Type) interface{} {
	if e.IsNA() {
		return nil
	}
	switch t {
	case series.Int:
		v, err := e.Int()
		if err != nil {
			return nil
		}
		return v
	case series.Float:
		f := e.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case series.Bool:
		v, err := e.Bool()
		if err != nil {
			return nil
		}
		return v
	}
	return e.String()
}

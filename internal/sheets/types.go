package sheets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row is one spreadsheet row with every cell already coerced to its display text.
type Row []string

// Dataset is the full payload returned by the endpoint. Row 0 holds the
// column headers, rows 1..N hold data. Rows may have different lengths.
type Dataset []Row

// Headers returns row 0, or nil for an empty dataset.
func (d Dataset) Headers() Row {
	if len(d) == 0 {
		return nil
	}
	return d[0]
}

// Body returns the data rows (everything after the header row).
func (d Dataset) Body() []Row {
	if len(d) <= 1 {
		return nil
	}
	return d[1:]
}

// Clone returns a deep copy so callers can hand datasets across goroutines.
func (d Dataset) Clone() Dataset {
	if len(d) == 0 {
		return nil
	}
	dup := make(Dataset, len(d))
	for i, row := range d {
		dup[i] = append(Row(nil), row...)
	}
	return dup
}

// decodeDataset reads a JSON document and converts it into a Dataset.
// Any well-formed JSON that is not an array yields an empty dataset; only
// malformed JSON, including anything after the first value, is an error.
func decodeDataset(r io.Reader) (Dataset, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode response: trailing data after JSON value")
	}

	items, ok := raw.([]any)
	if !ok || len(items) == 0 {
		return nil, nil
	}

	ds := make(Dataset, 0, len(items))
	for _, item := range items {
		ds = append(ds, toRow(item))
	}
	return ds, nil
}

// toRow converts a decoded row. A scalar where an array was expected
// becomes a single-cell row.
func toRow(item any) Row {
	cells, ok := item.([]any)
	if !ok {
		return Row{CellText(item)}
	}
	row := make(Row, len(cells))
	for i, cell := range cells {
		row[i] = CellText(cell)
	}
	return row
}

// CellText renders a decoded JSON value the way a spreadsheet cell displays it.
// Numbers keep their literal form and null is blank. Nested arrays are
// comma-joined; objects are shown as compact JSON.
func CellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, len(val))
		for i, part := range val {
			parts[i] = CellText(part)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

package dashboard

import "github.com/five82/sheetdash/internal/sheets"

// NoMatchesText fills the table body when there is nothing to show.
const NoMatchesText = "No matching records found"

// Table is fully rendered table content. Every render produces a new Table,
// so nothing from a previous render survives.
type Table struct {
	Headers []string
	Rows    [][]string
	// Placeholder is set instead of Rows when there are no rows to show.
	Placeholder string
	// Span is the number of columns the placeholder row covers.
	Span int
}

// BuildTable renders rows under headers. Cells keep their order and text;
// ragged rows are kept as they are.
func BuildTable(rows []sheets.Row, headers sheets.Row) Table {
	var t Table
	if len(headers) > 0 {
		t.Headers = append([]string(nil), headers...)
	}

	if len(rows) == 0 {
		t.Placeholder = NoMatchesText
		t.Span = len(t.Headers)
		if t.Span == 0 {
			t.Span = 1
		}
		return t
	}

	t.Rows = make([][]string, len(rows))
	for i, row := range rows {
		t.Rows[i] = append([]string{}, row...)
	}
	return t
}

// Columns returns the widest of the header row and all data rows.
func (t Table) Columns() int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// IsPlaceholder reports whether the table shows the "no matches" row.
func (t Table) IsPlaceholder() bool {
	return t.Placeholder != ""
}

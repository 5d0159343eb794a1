package dashboard

import (
	"strings"

	"github.com/five82/sheetdash/internal/sheets"
)

// Match filters the data rows of ds by query. A row matches when any cell
// contains the query, ignoring case; an empty query matches every row.
// ok is false when ds has no header plus data pair, in which case callers
// should leave the current table alone.
func Match(ds sheets.Dataset, query string) (headers sheets.Row, rows []sheets.Row, ok bool) {
	if len(ds) < 2 {
		return nil, nil, false
	}

	needle := strings.ToLower(query)
	rows = make([]sheets.Row, 0, len(ds)-1)
	for _, row := range ds.Body() {
		if rowMatches(row, needle) {
			rows = append(rows, row)
		}
	}
	return ds.Headers(), rows, true
}

func rowMatches(row sheets.Row, needle string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), needle) {
			return true
		}
	}
	return false
}

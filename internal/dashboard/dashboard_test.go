package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/sheetdash/internal/sheets"
)

func sampleDataset() sheets.Dataset {
	return sheets.Dataset{
		{"Name", "City"},
		{"Alice", "Paris"},
		{"Bob", "Berlin"},
	}
}

func TestIndicate(t *testing.T) {
	tests := []struct {
		sev   Severity
		class string
	}{
		{SeverityWarning, ""},
		{SeveritySuccess, ClassConnected},
		{SeverityError, ClassError},
	}
	for _, tt := range tests {
		t.Run(tt.sev.String(), func(t *testing.T) {
			ind := Indicate("label", tt.sev)
			assert.Equal(t, "label", ind.Label)
			assert.Equal(t, tt.class, ind.Class)
		})
	}
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, Indicator{Label: "Connecting...", Severity: SeverityWarning}, StatusConnecting.Indicator())
	assert.Equal(t, Indicator{Label: "Live", Severity: SeveritySuccess, Class: ClassConnected}, StatusLive.Indicator())
	assert.Equal(t, Indicator{Label: "No Data", Severity: SeverityWarning}, StatusNoData.Indicator())
	assert.Equal(t, Indicator{Label: "Connection Failed", Severity: SeverityError, Class: ClassError}, StatusFailed.Indicator())
}

func TestBuildTable(t *testing.T) {
	ds := sampleDataset()

	table := BuildTable(ds.Body(), ds.Headers())
	assert.Equal(t, []string{"Name", "City"}, table.Headers)
	assert.Equal(t, [][]string{{"Alice", "Paris"}, {"Bob", "Berlin"}}, table.Rows)
	assert.False(t, table.IsPlaceholder())
	assert.Equal(t, 2, table.Columns())
}

func TestBuildTable_EmptyRowsShowsPlaceholder(t *testing.T) {
	table := BuildTable(nil, sheets.Row{"A", "B", "C"})
	assert.Empty(t, table.Rows)
	assert.Equal(t, NoMatchesText, table.Placeholder)
	assert.Equal(t, 3, table.Span)

	table = BuildTable(nil, nil)
	assert.Equal(t, 1, table.Span)
}

func TestBuildTable_RaggedRowsKeepTheirCells(t *testing.T) {
	table := BuildTable([]sheets.Row{{"1"}, {"1", "2", "3"}}, sheets.Row{"A", "B"})
	assert.Equal(t, [][]string{{"1"}, {"1", "2", "3"}}, table.Rows)
	assert.Equal(t, 3, table.Columns())
}

func TestBuildTable_CopiesInput(t *testing.T) {
	rows := []sheets.Row{{"x"}}
	headers := sheets.Row{"h"}
	table := BuildTable(rows, headers)

	rows[0][0] = "changed"
	headers[0] = "changed"
	assert.Equal(t, "x", table.Rows[0][0])
	assert.Equal(t, "h", table.Headers[0])
}

func TestMatch(t *testing.T) {
	ds := sampleDataset()

	tests := []struct {
		name  string
		query string
		want  []sheets.Row
	}{
		{"case insensitive", "paris", []sheets.Row{{"Alice", "Paris"}}},
		{"substring", "er", []sheets.Row{{"Bob", "Berlin"}}},
		{"empty query matches all", "", ds.Body()},
		{"no match", "zzz", []sheets.Row{}},
		{"header text is not searched", "city", []sheets.Row{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers, rows, ok := Match(ds, tt.query)
			require.True(t, ok)
			assert.Equal(t, ds.Headers(), headers)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestMatch_NameAgeExample(t *testing.T) {
	ds := sheets.Dataset{
		{"Name", "Age"},
		{"Alice", "30"},
		{"Bob", "25"},
	}
	headers, rows, ok := Match(ds, "ali")
	require.True(t, ok)
	assert.Equal(t, sheets.Row{"Name", "Age"}, headers)
	assert.Equal(t, []sheets.Row{{"Alice", "30"}}, rows)
}

func TestMatch_ExtendingQueryNarrows(t *testing.T) {
	ds := sheets.Dataset{
		{"Name", "City", "Team"},
		{"Alice", "Paris", "Platform"},
		{"Alicia", "Lyon", "Data"},
		{"Bob", "Berlin", "Platform"},
		{"Carol", "Bern", "Plat"},
		{"Dana", "Alicante", ""},
		{"Eve", "", "Data"},
	}

	queries := []string{"alic", "BERLIN", "platform", "dat", "zz", "an"}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			_, prev, ok := Match(ds, "")
			require.True(t, ok)
			assert.Equal(t, ds.Body(), prev)

			for i := 1; i <= len(q); i++ {
				_, rows, ok := Match(ds, q[:i])
				require.True(t, ok)
				for _, r := range rows {
					assert.Contains(t, prev, r, "query %q matched a row %q did not", q[:i], q[:i-1])
				}
				assert.LessOrEqual(t, len(rows), len(prev))
				prev = rows
			}
		})
	}
}

func TestMatch_NumbersAndBlankCells(t *testing.T) {
	ds := sheets.Dataset{
		{"Id", "Note"},
		{"42", ""},
		{"7", "ok"},
	}
	_, rows, ok := Match(ds, "4")
	require.True(t, ok)
	assert.Equal(t, []sheets.Row{{"42", ""}}, rows)

	_, rows, _ = Match(ds, "null")
	assert.Empty(t, rows)
}

func TestMatch_RequiresHeaderAndData(t *testing.T) {
	_, _, ok := Match(nil, "a")
	assert.False(t, ok)
	_, _, ok = Match(sheets.Dataset{{"only header"}}, "a")
	assert.False(t, ok)
}

func TestBoard_LoadingIsReferenceCounted(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, "Connecting...", b.Snapshot().Status.Label)

	b.SetLoading(true)
	b.SetLoading(true)
	b.SetLoading(false)
	assert.True(t, b.Snapshot().Loading)
	b.SetLoading(false)
	assert.False(t, b.Snapshot().Loading)
	b.SetLoading(false)
	assert.False(t, b.Snapshot().Loading)
	b.SetLoading(true)
	assert.True(t, b.Snapshot().Loading)
}

func TestBoard_ErrorPanelHidesTable(t *testing.T) {
	b := NewBoard()
	before := b.Snapshot().Version

	b.SetError(true)
	s := b.Snapshot()
	assert.True(t, s.ErrorShown)
	assert.True(t, s.TableHidden)
	assert.Greater(t, s.Version, before)

	b.SetError(false)
	s = b.Snapshot()
	assert.False(t, s.ErrorShown)
	assert.False(t, s.TableHidden)
}

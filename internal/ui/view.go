package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sheetdash/internal/dashboard"
)

// applyTheme pushes the current theme into the bubbles components.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()

	ts := table.DefaultStyles()
	ts.Header = styles.TableHeader
	ts.Cell = styles.TableCell
	ts.Selected = styles.Selected.Bold(true)
	m.table.SetStyles(ts)

	m.search.PromptStyle = styles.AccentText
	m.search.TextStyle = styles.Text
	m.search.PlaceholderStyle = styles.FaintText

	m.spinner.Style = styles.AccentText

	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.FaintText
}

// layoutTable rebuilds table columns and rows from the board. Ragged rows
// are padded to the widest row and extra columns get blank headers, since
// the table widget needs every row to match the column count.
func (m *Model) layoutTable() {
	t := m.state.Table
	n := t.Columns()
	if n == 0 {
		n = 1
	}

	headers := padRow(t.Headers, n)
	rows := make([]table.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, table.Row(padRow(r, n)))
	}

	widths := columnWidths(headers, rows, m.width)
	cols := make([]table.Column, n)
	for i := range cols {
		cols[i] = table.Column{Title: headers[i], Width: widths[i]}
	}

	// Clear rows first so a narrower column set never sees wider rows.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.SetHeight(max(m.height-chromeLines-2, minTableHeight))
	m.table.SetWidth(max(m.width, minTableWidth))
}

func padRow(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}

func columnWidths(headers []string, rows []table.Row, total int) []int {
	n := len(headers)
	widths := make([]int, n)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	limit := maxColumnWidth
	if total > 0 {
		// two cells of padding per column
		if fair := total/n - 2; fair < limit {
			limit = max(fair, minColumnWidth)
		}
	}
	for i := range widths {
		widths[i] = min(max(widths[i], minColumnWidth), limit)
	}
	return widths
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderSearchBar(),
		m.renderContent(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)

	parts := []string{
		styles.Logo.Render("sheetdash"),
		m.theme.Styles().StatusChip(m.state.Status),
	}
	if m.state.Spinning {
		parts = append(parts, m.spinner.View())
	}
	parts = append(parts, styles.MutedText.Render(lastUpdatedText(m.state)))
	parts = append(parts, styles.Text.Render(m.rowCounter()))
	if m.width > 0 && m.width < LayoutCompactWidth {
		line := strings.Join(parts, styles.FaintText.Render("  "))
		return styles.SurfaceAlt.Width(m.width).Render(line)
	}
	if host := m.endpointHost(); host != "" {
		parts = append(parts, styles.FaintText.Render(truncate(host, hostMaxWidth)))
	}
	if m.config != nil && m.config.RefreshInterval > 0 {
		parts = append(parts, styles.FaintText.Render("auto "+m.config.RefreshInterval.String()))
	}

	line := strings.Join(parts, styles.FaintText.Render("  "))
	return styles.SurfaceAlt.Width(m.width).Render(line)
}

func (m Model) renderSearchBar() string {
	return m.theme.Styles().Surface.Width(m.width).Render(m.search.View())
}

// renderContent shows at most one panel. The error panel wins over the
// empty panel, which wins over the table. Loading dims the table.
func (m Model) renderContent() string {
	styles := m.theme.Styles()
	height := max(m.height-chromeLines, 3)
	place := func(s string) string {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, s)
	}

	switch {
	case m.state.ErrorShown:
		body := styles.DangerText.Render("Unable to load data") + "\n\n" +
			styles.Text.Render("Check the API URL and your connection, then press r to retry.")
		return place(styles.ErrorPanel.Render(body))

	case m.state.EmptyShown:
		body := styles.WarningText.Render("No data available") + "\n\n" +
			styles.MutedText.Render("The sheet returned no rows.")
		return place(styles.Panel.Render(body))

	case !m.state.HasTable:
		if m.state.Loading {
			return place(m.spinner.View() + " " + styles.MutedText.Render("Loading..."))
		}
		return place("")
	}

	tbl := m.table
	if m.state.Loading {
		ts := table.DefaultStyles()
		ts.Header = styles.TableHeader.Foreground(lipgloss.Color(m.theme.Faint))
		ts.Cell = styles.TableCell.Foreground(lipgloss.Color(m.theme.Faint))
		ts.Selected = lipgloss.NewStyle()
		tbl.SetStyles(ts)
	}

	content := tbl.View()
	if m.state.Table.IsPlaceholder() {
		// keep the header row and its rule
		lines := strings.SplitN(content, "\n", 3)
		header := strings.Join(lines[:min(2, len(lines))], "\n")
		msg := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, styles.MutedText.Render(m.state.Table.Placeholder))
		content = header + "\n\n" + msg
	}

	if m.state.Loading {
		content = m.spinner.View() + " " + styles.MutedText.Render("Loading...") + "\n" + content
	}
	return lipgloss.NewStyle().Height(height).MaxHeight(height).Render(content)
}

func (m Model) renderFooter() string {
	return m.theme.Styles().MutedText.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) rowCounter() string {
	visible := len(m.state.Table.Rows)
	return fmt.Sprintf("%d/%d rows", visible, m.total)
}

func (m Model) endpointHost() string {
	if m.ctrl == nil {
		return ""
	}
	u, err := url.Parse(m.ctrl.Endpoint())
	if err != nil {
		return ""
	}
	return u.Host
}

func lastUpdatedText(st dashboard.BoardState) string {
	if st.LastUpdated.IsZero() {
		return "Last updated: never"
	}
	return "Last updated: " + st.LastUpdated.Local().Format("15:04:05")
}

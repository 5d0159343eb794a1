// Package ui implements the terminal dashboard with Bubble Tea.
//
// # Layout
//
//	┌────────────────────────────────────────────────────────────┐
//	│ SHEETDASH  ● Live   Last updated: 10:42:07   12/40 rows   │ header
//	├────────────────────────────────────────────────────────────┤
//	│ / berlin                                                  │ search
//	│ Name        City        Age                               │
//	│ Bob         Berlin      25                                │ table
//	│ ...                                                       │
//	├────────────────────────────────────────────────────────────┤
//	│ r refresh  / search  T theme  ? help  q quit              │ footer
//	└────────────────────────────────────────────────────────────┘
//
// The content area shows exactly one of: the error panel, the empty panel,
// or the table. While a refresh is running the table is dimmed under a
// loading line rather than hidden.
//
// # State
//
// The model never talks to the network. Refreshes run through the
// dashboard.Controller in a tea.Cmd; the controller pushes status, loading
// and table changes into a dashboard.Board, and the model copies the board
// on each tick when its version has moved. The active search query is
// re-applied after every refresh so filtered views stay filtered.
//
// # Key Bindings
//
//   - r, ctrl+r: Refresh now
//   - /: Focus search (enter or esc leaves it; esc again clears)
//   - up/down, k/j, g/G, ctrl+u/ctrl+d: Move through rows
//   - T: Cycle theme (saved to prefs)
//   - h, ?: Toggle help
//   - q, ctrl+c: Quit
package ui

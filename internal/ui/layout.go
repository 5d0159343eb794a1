package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the header drops the
	// endpoint host and the auto refresh interval.
	LayoutCompactWidth = 80

	// hostMaxWidth caps the endpoint host shown in the header.
	hostMaxWidth = 40
)

// Table sizing.
const (
	maxColumnWidth = 40
	minColumnWidth = 4
	minTableWidth  = 20
	minTableHeight = 3

	// header, search bar, footer
	chromeLines = 3
)

// searchCharLimit bounds the search query length.
const searchCharLimit = 256

// defaultTick is how often the model copies the board.
const defaultTick = 150 * time.Millisecond

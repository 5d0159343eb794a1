package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate trims value and cuts it to limit terminal cells, ending in "..."
// when there is room for it. Wide runes count as two cells.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	if limit <= 3 {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, "...")
}

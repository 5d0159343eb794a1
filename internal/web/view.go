package web

import (
	"net/url"
	"time"

	"github.com/five82/sheetdash/internal/dashboard"
)

// pageView is the data behind one rendering of the page.
type pageView struct {
	dashboard.BoardState

	Query       string
	LastUpdated string
	Visible     int
	Total       int
	Host        string

	updated time.Time
}

// buildView combines the shared board with a per-request search. Each
// request filters on its own so concurrent viewers never see each other's
// query; the board's table is used when nothing is retained to filter.
func (s *Server) buildView(query string) pageView {
	st := s.board.Snapshot()
	ds := s.ctrl.Store().Dataset()

	view := pageView{
		BoardState: st,
		Query:      query,
		updated:    st.LastUpdated,
	}
	if headers, rows, ok := dashboard.Match(ds, query); ok {
		view.Table = dashboard.BuildTable(rows, headers)
		view.HasTable = true
	}
	view.Visible = len(view.Table.Rows)
	if n := len(ds) - 1; n > 0 {
		view.Total = n
	}

	if st.LastUpdated.IsZero() {
		view.LastUpdated = "Last updated: never"
	} else {
		view.LastUpdated = "Last updated: " + st.LastUpdated.Local().Format("15:04:05")
	}
	if u, err := url.Parse(s.ctrl.Endpoint()); err == nil {
		view.Host = u.Host
	}
	return view
}

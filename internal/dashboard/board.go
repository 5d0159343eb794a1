package dashboard

import (
	"sync"
	"time"
)

// Surface is everything a refresh attempt or a search can change on screen.
type Surface interface {
	RenderTable(Table)
	SetStatus(Indicator)
	SetLoading(bool)
	// SetError shows or hides the error panel. Showing it hides the table.
	SetError(bool)
	SetEmpty(bool)
	SetLastUpdated(time.Time)
	// SetSpinning toggles the busy animation on the refresh control.
	SetSpinning(bool)
}

// BoardState is a point-in-time copy of a Board.
type BoardState struct {
	Table       Table
	HasTable    bool
	Status      Indicator
	Loading     bool
	ErrorShown  bool
	EmptyShown  bool
	TableHidden bool
	Spinning    bool
	LastUpdated time.Time
	// Version increases on every change so readers can skip redraws.
	Version uint64
}

// Board is an in-memory Surface shared by the terminal and web views.
// Loading is reference counted so overlapping attempts do not hide the
// overlay while one of them is still running.
type Board struct {
	mu       sync.Mutex
	state    BoardState
	loading  int
	spinning int
}

var _ Surface = (*Board)(nil)

// NewBoard returns a board showing the initial "Connecting..." status.
func NewBoard() *Board {
	return &Board{state: BoardState{Status: StatusConnecting.Indicator()}}
}

func (b *Board) RenderTable(t Table) {
	b.update(func(s *BoardState) {
		s.Table = t
		s.HasTable = true
	})
}

func (b *Board) SetStatus(ind Indicator) {
	b.update(func(s *BoardState) { s.Status = ind })
}

func (b *Board) SetLoading(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = adjust(b.loading, on)
	b.state.Loading = b.loading > 0
	b.state.Version++
}

func (b *Board) SetError(on bool) {
	b.update(func(s *BoardState) {
		s.ErrorShown = on
		s.TableHidden = on
	})
}

func (b *Board) SetEmpty(on bool) {
	b.update(func(s *BoardState) { s.EmptyShown = on })
}

func (b *Board) SetLastUpdated(t time.Time) {
	b.update(func(s *BoardState) { s.LastUpdated = t })
}

func (b *Board) SetSpinning(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.spinning = adjust(b.spinning, on)
	b.state.Spinning = b.spinning > 0
	b.state.Version++
}

// Snapshot returns a copy of the board state.
func (b *Board) Snapshot() BoardState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Board) update(fn func(*BoardState)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.state)
	b.state.Version++
}

func adjust(n int, on bool) int {
	if on {
		return n + 1
	}
	if n > 0 {
		return n - 1
	}
	return 0
}

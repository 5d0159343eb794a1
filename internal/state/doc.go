// Package state holds the retained dataset shared between refreshes and search.
//
// # Overview
//
// A refresh attempt writes the dataset; the search filter and the HTML view
// read it. Store is the single place both sides meet.
//
//	Writer (refresh):              Readers (filter, web):
//	┌────────────────────┐        ┌────────────────────┐
//	│ gen := Begin()     │        │                    │
//	│ FetchDataset()     │        │                    │
//	│      ↓             │        │                    │
//	│ SetDataset(gen, …) │───────→│ Dataset()          │
//	│ RecordFailure(…)   │ (mutex)│ Snapshot()         │
//	└────────────────────┘        └────────────────────┘
//
// # Generations
//
// Refreshes may overlap (a manual refresh while an auto refresh is still in
// flight). Begin hands out a monotonically increasing generation and only the
// newest one may write:
//
//	slow := store.Begin()   // 1
//	fast := store.Begin()   // 2
//	store.SetDataset(fast, ds) // true
//	store.SetDataset(slow, ds) // false, discarded
//
// # Update Semantics
//
//   - SetDataset with rows: dataset replaced, LastUpdated set, failures reset
//   - SetDataset with no rows: dataset cleared, failures reset
//   - RecordFailure: dataset kept, LastError set, failure counter incremented
//
// All reads return deep copies.
package state

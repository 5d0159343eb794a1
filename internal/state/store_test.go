package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/sheetdash/internal/sheets"
)

func TestStore_SetDatasetAndSnapshotClone(t *testing.T) {
	var s Store

	gen := s.Begin()
	before := time.Now()
	if !s.SetDataset(gen, sheets.Dataset{{"h"}, {"a"}, {"b"}}) {
		t.Fatalf("SetDataset returned false for latest generation")
	}

	snap := s.Snapshot()
	if len(snap.Dataset) != 3 {
		t.Fatalf("snapshot dataset = %#v, want 3 rows", snap.Dataset)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned data should be independent of the stored one.
	snap.Dataset[1][0] = "changed"
	ds := s.Dataset()
	ds[2][0] = "changed"
	if got := s.Dataset(); got[1][0] != "a" || got[2][0] != "b" {
		t.Fatalf("Store leaked internal storage: %#v", got)
	}
}

func TestStore_FailureKeepsPreviousData(t *testing.T) {
	var s Store

	s.SetDataset(s.Begin(), sheets.Dataset{{"h"}, {"a"}})
	prev := s.Snapshot()

	origErr := errors.New("boom")
	if !s.RecordFailure(s.Begin(), origErr) {
		t.Fatalf("RecordFailure returned false for latest generation")
	}

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Dataset, prev.Dataset) {
		t.Fatalf("dataset changed on failure: got %#v want %#v", snap.Dataset, prev.Dataset)
	}
	if !snap.LastUpdated.Equal(prev.LastUpdated) {
		t.Fatalf("LastUpdated moved on failure")
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_EmptyResultClearsDataset(t *testing.T) {
	var s Store

	s.SetDataset(s.Begin(), sheets.Dataset{{"h"}, {"a"}})
	if !s.SetDataset(s.Begin(), nil) {
		t.Fatalf("SetDataset(nil) returned false")
	}
	if ds := s.Dataset(); len(ds) != 0 {
		t.Fatalf("Dataset = %#v, want empty", ds)
	}
}

func TestStore_StaleGenerationRejected(t *testing.T) {
	var s Store

	slow := s.Begin()
	fast := s.Begin()

	if s.IsLatest(slow) {
		t.Fatalf("IsLatest(slow) = true, want false")
	}
	if !s.SetDataset(fast, sheets.Dataset{{"h"}, {"fast"}}) {
		t.Fatalf("SetDataset(fast) returned false")
	}
	if s.SetDataset(slow, sheets.Dataset{{"h"}, {"slow"}}) {
		t.Fatalf("SetDataset(slow) returned true, want stale rejection")
	}
	if s.RecordFailure(slow, errors.New("late")) {
		t.Fatalf("RecordFailure(slow) returned true, want stale rejection")
	}

	snap := s.Snapshot()
	if snap.Dataset[1][0] != "fast" || snap.LastError != nil {
		t.Fatalf("stale attempt leaked into snapshot: %#v err=%v", snap.Dataset, snap.LastError)
	}
	if snap.Generation != fast {
		t.Fatalf("Generation = %d, want %d", snap.Generation, fast)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.RecordFailure(s.Begin(), errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.RecordFailure(s.Begin(), errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.SetDataset(s.Begin(), sheets.Dataset{{"h"}, {"a"}})
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

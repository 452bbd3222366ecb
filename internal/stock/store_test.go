package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gardenstock/stockwatch/internal/domain"
	"github.com/gardenstock/stockwatch/internal/logger"
)

type fakeFetcher struct {
	records []domain.StockRecord
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([]domain.StockRecord, error) {
	f.calls++
	return f.records, f.err
}

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	return logger.New("error", false)
}

func TestRefetchOfflineUsesFallback(t *testing.T) {
	s := NewStore(nil, testLogger(t))

	s.Refetch(context.Background())

	state := s.State()
	if state.Data == nil {
		t.Fatal("Data is nil after offline refetch")
	}
	if state.Loading {
		t.Error("Loading still true after refetch")
	}
	if state.Error != "" {
		t.Errorf("Error = %q, want empty", state.Error)
	}
	if state.Data.Total() == 0 {
		t.Error("fallback snapshot is empty")
	}
	if state.LastUpdated == nil {
		t.Error("LastUpdated not set")
	}
}

func TestRefetchDemotesCurrentToPrevious(t *testing.T) {
	f := &fakeFetcher{records: []domain.StockRecord{
		{Name: "Carrot", Quantity: 3, Category: "Seeds"},
	}}
	s := NewStore(f, testLogger(t))

	s.Refetch(context.Background())
	first := s.State().Data

	f.records = []domain.StockRecord{
		{Name: "Carrot", Quantity: 7, Category: "Seeds"},
	}
	s.Refetch(context.Background())

	state := s.State()
	if state.PreviousData != first {
		t.Error("PreviousData is not the previously committed snapshot")
	}
	if got, _ := state.Data.Quantity("Carrot", "Seeds"); got != "x7" {
		t.Errorf("current Carrot = %q, want x7", got)
	}
}

func TestRefetchFailureKeepsSnapshotAndRecordsError(t *testing.T) {
	f := &fakeFetcher{records: []domain.StockRecord{
		{Name: "Carrot", Quantity: 3, Category: "Seeds"},
	}}
	s := NewStore(f, testLogger(t))
	s.Refetch(context.Background())

	f.err = errors.New("upstream down")
	s.Refetch(context.Background())

	state := s.State()
	if state.Data == nil {
		t.Fatal("committed snapshot was discarded on fetch failure")
	}
	if got, _ := state.Data.Quantity("Carrot", "Seeds"); got != "x3" {
		t.Errorf("Carrot = %q, want the pre-failure x3", got)
	}
	if state.Error != "upstream down" {
		t.Errorf("Error = %q, want %q", state.Error, "upstream down")
	}
	if state.Loading {
		t.Error("Loading still true after failed refetch")
	}
}

func TestRefetchErrorClearedBySubsequentSuccess(t *testing.T) {
	f := &fakeFetcher{err: errors.New("first cycle fails")}
	s := NewStore(f, testLogger(t))
	s.Refetch(context.Background())

	f.err = nil
	f.records = []domain.StockRecord{{Name: "Carrot", Quantity: 1, Category: "Seeds"}}
	s.Refetch(context.Background())

	if state := s.State(); state.Error != "" {
		t.Errorf("Error = %q after successful refetch, want empty", state.Error)
	}
}

func TestOnCommitFiresWithCommittedSnapshots(t *testing.T) {
	f := &fakeFetcher{records: []domain.StockRecord{
		{Name: "Carrot", Quantity: 3, Category: "Seeds"},
	}}
	s := NewStore(f, testLogger(t))

	var gotCurrent, gotPrevious *domain.Snapshot
	calls := 0
	s.OnCommit(func(current, previous *domain.Snapshot) {
		calls++
		gotCurrent, gotPrevious = current, previous
	})

	s.Refetch(context.Background())
	if calls != 1 {
		t.Fatalf("onCommit fired %d times, want 1", calls)
	}
	if gotPrevious != nil {
		t.Error("previous snapshot non-nil on first commit")
	}

	first := gotCurrent
	s.Refetch(context.Background())
	if calls != 2 {
		t.Fatalf("onCommit fired %d times after second refetch, want 2", calls)
	}
	if gotPrevious != first {
		t.Error("previous passed to onCommit is not the prior committed snapshot")
	}

	// Failed fetches never commit.
	f.err = errors.New("down")
	s.Refetch(context.Background())
	if calls != 2 {
		t.Errorf("onCommit fired on failed fetch")
	}
}

func TestSetNextUpdate(t *testing.T) {
	s := NewStore(nil, testLogger(t))
	next := time.Date(2025, 6, 1, 12, 5, 10, 0, time.UTC)

	s.SetNextUpdate(next)

	state := s.State()
	if state.NextUpdate == nil || !state.NextUpdate.Equal(next) {
		t.Errorf("NextUpdate = %v, want %v", state.NextUpdate, next)
	}
}

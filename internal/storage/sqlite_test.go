package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-ladder/internal/ladder"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testDraw(t *testing.T, seed int64) *ladder.Draw {
	t.Helper()
	d, err := ladder.NewDraw(ladder.DrawParams{
		Participants: []string{"Ann", "Bob", "Cid"},
		Results:      []string{"tea", "coffee", "nothing"},
		RungCount:    12,
		Seed:         seed,
		Width:        600,
		Geometry:     ladder.DefaultGeometry(),
	})
	if err != nil {
		t.Fatalf("NewDraw() failed: %v", err)
	}
	return d
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsDraws(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveDraw(testDraw(t, 1))
	if err != nil {
		t.Fatalf("SaveDraw() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.LoadDraw(id); err != nil {
		t.Errorf("LoadDraw() after reopen failed: %v", err)
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	d := testDraw(t, 77)

	id, err := store.SaveDraw(d)
	if err != nil {
		t.Fatalf("SaveDraw() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveDraw() returned empty ID")
	}

	rec, err := store.LoadDraw(id)
	if err != nil {
		t.Fatalf("LoadDraw() failed: %v", err)
	}

	if rec.Seed != d.Seed || rec.Height != d.Height || rec.Requested != d.Requested {
		t.Errorf("header mismatch: got seed=%d height=%d requested=%d", rec.Seed, rec.Height, rec.Requested)
	}
	if rec.Geometry != d.Geometry {
		t.Errorf("geometry mismatch: got %+v, want %+v", rec.Geometry, d.Geometry)
	}
	if diff := cmp.Diff(d.Participants, rec.Participants); diff != "" {
		t.Errorf("participants mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(d.Results, rec.Results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ladder.Outcomes(d.Paths), rec.Ends); diff != "" {
		t.Errorf("outcomes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(d.Rungs.Sorted(), rec.Rungs); diff != "" {
		t.Errorf("rungs mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreRecordReplays(t *testing.T) {
	store := openTestStore(t)
	d := testDraw(t, 31337)

	id, err := store.SaveDraw(d)
	if err != nil {
		t.Fatalf("SaveDraw() failed: %v", err)
	}
	rec, err := store.LoadDraw(id)
	if err != nil {
		t.Fatalf("LoadDraw() failed: %v", err)
	}

	replayed, err := ladder.NewDraw(rec.Params())
	if err != nil {
		t.Fatalf("NewDraw(replay) failed: %v", err)
	}
	if diff := cmp.Diff(rec.Rungs, replayed.Rungs.Sorted()); diff != "" {
		t.Errorf("replayed rungs differ (-stored +replayed):\n%s", diff)
	}
	if diff := cmp.Diff(rec.Ends, ladder.Outcomes(replayed.Paths)); diff != "" {
		t.Errorf("replayed outcomes differ (-stored +replayed):\n%s", diff)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadDraw("does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreRecentDraws(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for seed := int64(1); seed <= 5; seed++ {
		id, err := store.SaveDraw(testDraw(t, seed))
		if err != nil {
			t.Fatalf("SaveDraw() failed: %v", err)
		}
		ids = append(ids, id)
	}

	recent, err := store.RecentDraws(3)
	if err != nil {
		t.Fatalf("RecentDraws() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 draws with limit, got %d", len(recent))
	}

	// Newest first
	if recent[0].ID != ids[4] {
		t.Errorf("expected newest draw %s first, got %s", ids[4], recent[0].ID)
	}
	for _, r := range recent {
		if r.Lanes != 3 || r.Requested != 12 {
			t.Errorf("unexpected summary %+v", r)
		}
		if r.Placed > r.Requested {
			t.Errorf("placed %d exceeds requested %d", r.Placed, r.Requested)
		}
	}
}

func TestStoreDeleteDraw(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveDraw(testDraw(t, 5))
	if err != nil {
		t.Fatalf("SaveDraw() failed: %v", err)
	}

	if err := store.DeleteDraw(id); err != nil {
		t.Fatalf("DeleteDraw() failed: %v", err)
	}
	if _, err := store.LoadDraw(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteDraw(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty journal failed: %v", err)
	}
	if stats.Draws != 0 {
		t.Errorf("expected 0 draws, got %d", stats.Draws)
	}

	for seed := int64(1); seed <= 4; seed++ {
		if _, err := store.SaveDraw(testDraw(t, seed)); err != nil {
			t.Fatalf("SaveDraw() failed: %v", err)
		}
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Draws != 4 {
		t.Errorf("expected 4 draws, got %d", stats.Draws)
	}
	if stats.AvgLanes != 3 {
		t.Errorf("expected average of 3 lanes, got %v", stats.AvgLanes)
	}
	if stats.AvgRungs <= 0 || stats.AvgRungs > 12 {
		t.Errorf("unexpected average rung count %v", stats.AvgRungs)
	}
	if stats.LastDraw.IsZero() {
		t.Error("expected LastDraw to be set")
	}
}

package history

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/verte-zerg/fzlaunch/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "state", "history.toml"))
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	store := testStore(t)
	records := store.Load()
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d records", len(records))
	}
}

func TestLoadCorruptFileReturnsEmpty(t *testing.T) {
	store := testStore(t)
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(store.path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	records := store.Load()
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d records", len(records))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := testStore(t)
	lastUsed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	records := map[string]model.HistoryRecord{
		"firefox":        {UseCount: 5, LastUsed: lastUsed},
		"org.gnome.Maps": {UseCount: 1, LastUsed: lastUsed.Add(-time.Hour)},
	}

	if err := store.Save(records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded := store.Load()
	if !reflect.DeepEqual(records, loaded) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", records, loaded)
	}
}

func TestSaveLoadIdempotentReload(t *testing.T) {
	store := testStore(t)
	records := map[string]model.HistoryRecord{
		"vim": {UseCount: 3, LastUsed: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	if err := store.Save(records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := store.Save(store.Load()); err != nil {
			t.Fatalf("Save failed on pass %d: %v", i, err)
		}
	}
	if !reflect.DeepEqual(records, store.Load()) {
		t.Fatalf("repeated save(load()) changed content: %+v", store.Load())
	}
}

func TestRecordUseMonotonic(t *testing.T) {
	store := testStore(t)
	if err := store.Save(map[string]model.HistoryRecord{"vim": {UseCount: 2, LastUsed: time.Now()}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := store.RecordUse("vim"); err != nil {
			t.Fatalf("RecordUse failed: %v", err)
		}
	}
	records := store.Load()
	if records["vim"].UseCount != 5 {
		t.Fatalf("expected use count 5, got %d", records["vim"].UseCount)
	}
}

func TestRecordUseInsertsNewRecord(t *testing.T) {
	store := testStore(t)
	used := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return used }

	if err := store.RecordUse("new-app"); err != nil {
		t.Fatalf("RecordUse failed: %v", err)
	}
	records := store.Load()
	rec, ok := records["new-app"]
	if !ok {
		t.Fatalf("expected record to be inserted")
	}
	if rec.UseCount != 1 {
		t.Fatalf("expected use count 1, got %d", rec.UseCount)
	}
	if !rec.LastUsed.Equal(used) {
		t.Fatalf("expected last used %v, got %v", used, rec.LastUsed)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	store := testStore(t)
	if err := store.Save(map[string]model.HistoryRecord{"x": {UseCount: 1, LastUsed: time.Now()}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	items, err := os.ReadDir(filepath.Dir(store.path))
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(items) != 1 || items[0].Name() != "history.toml" {
		t.Fatalf("expected only history.toml, got %v", items)
	}
}

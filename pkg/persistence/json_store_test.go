package persistence

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}
	defer store.Close()

	fresh, err := store.LoadProgress()
	if err != nil {
		t.Fatalf("LoadProgress failed: %v", err)
	}
	if fresh.Floor != 0 || fresh.Seed != 0 {
		t.Errorf("fresh store should hold zero progress, got %+v", fresh)
	}

	want := Progress{Floor: 3, Seed: 99}
	if err := store.SaveProgress(want); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	// A second store on the same file must see the saved state.
	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopening store failed: %v", err)
	}
	got, err := reopened.LoadProgress()
	if err != nil {
		t.Fatalf("LoadProgress failed: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v after reopen, got %+v", want, got)
	}
}

func TestJSONStoreCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")

	if _, err := NewJSONStore(path); err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file should exist after creation: %v", err)
	}
}

func TestJSONStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewJSONStore(path); err == nil {
		t.Error("expected error for corrupt store file")
	}
}

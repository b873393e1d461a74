package state

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"airmail/internal/episodes"
)

func TestLoadAiredMissingFile(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	_, ok, err := store.LoadAired()
	if err != nil {
		t.Fatalf("LoadAired returned error: %v", err)
	}
	if ok {
		t.Fatal("expected no record before first save")
	}
}

func TestAiredRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	rec := episodes.AiredRecord{Season: 21, Number: 5, Name: "Example", AirDate: "2026-02-15"}

	if err := store.SaveAired(rec); err != nil {
		t.Fatalf("SaveAired returned error: %v", err)
	}

	got, ok, err := store.LoadAired()
	if err != nil {
		t.Fatalf("LoadAired returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected record after save")
	}
	if got != rec {
		t.Fatalf("loaded %+v, want %+v", got, rec)
	}
}

func TestAiredOverwritten(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	if err := store.SaveAired(episodes.AiredRecord{Season: 1, Number: 1}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveAired(episodes.AiredRecord{Season: 1, Number: 2}); err != nil {
		t.Fatal(err)
	}

	got, _, err := store.LoadAired()
	if err != nil {
		t.Fatal(err)
	}
	if got.Number != 2 {
		t.Fatalf("record not overwritten: %+v", got)
	}
}

func TestUpcomingRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	if err := store.SaveUpcoming([]int{10, 11, 12}); err != nil {
		t.Fatalf("SaveUpcoming returned error: %v", err)
	}

	ids, ok, err := store.LoadUpcoming()
	if err != nil {
		t.Fatalf("LoadUpcoming returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected ids after save")
	}
	if !reflect.DeepEqual(ids, []int{10, 11, 12}) {
		t.Fatalf("ids = %v, want [10 11 12]", ids)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)

	if err := store.SaveUpcoming([]int{1}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "aired_state.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir, nil)
	if _, _, err := store.LoadAired(); err == nil {
		t.Fatal("expected error for corrupt state file")
	}
}

package aliasstore

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "nonexistent.json"))

	if len(got) != 0 {
		t.Errorf("Expected empty map for missing file, got %v", got)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if got := Load(""); len(got) != 0 {
		t.Errorf("Expected empty map for empty path, got %v", got)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if got := Load(path); len(got) != 0 {
		t.Errorf("Expected empty map for corrupt file, got %v", got)
	}
}

func TestLoadDropsNonStringValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	content := `{"1 афо": "1АФО", "bad_number": 5, "bad_list": ["x"], "орит": "ОРИТ"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	got := Load(path)

	want := map[string]string{"1 афо": "1АФО", "орит": "ОРИТ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "aliases.json")
	aliases := map[string]string{
		"1 афо ":          "1АФО",
		"оперблок 2 этаж": "ОПЕРБЛОК 2 ЭТАЖ",
	}

	if err := Save(path, aliases); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := Load(path)
	if !reflect.DeepEqual(got, aliases) {
		t.Errorf("Round trip mismatch: saved %v, loaded %v", aliases, got)
	}
}

func TestSaveDropsEmptyEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	aliases := map[string]string{
		"1 афо": "1АФО",
		"":      "ОРИТ",
		"х/о":   "",
	}

	if err := Save(path, aliases); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := Load(path)
	want := map[string]string{"1 афо": "1АФО"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSaveEmptyPath(t *testing.T) {
	if err := Save("", map[string]string{"a": "b"}); err == nil {
		t.Error("Expected error for empty path")
	}
}

func TestSaveRecreatesDeletedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	aliases := map[string]string{"1 афо": "1АФО"}

	if err := Save(path, aliases); err != nil {
		t.Fatalf("Initial save failed: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to delete alias file: %v", err)
	}

	if err := Save(path, aliases); err != nil {
		t.Fatalf("Re-save after deletion failed: %v", err)
	}
	if got := Load(path); !reflect.DeepEqual(got, aliases) {
		t.Errorf("Expected %v after recreation, got %v", aliases, got)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.json")

	if err := Save(path, map[string]string{"a": "b"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}
}

func TestStoreMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	store := NewStore(path)

	if err := store.Save(map[string]string{"1 афо": "1АФО"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	merged, err := store.Merge(map[string]string{
		"орит кдц": "ОРИТ КДЦ",
		"":         "dropped",
		"dropped":  "",
	})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	want := map[string]string{"1 афо": "1АФО", "орит кдц": "ОРИТ КДЦ"}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("Expected %v, got %v", want, merged)
	}
	if got := store.Load(); !reflect.DeepEqual(got, want) {
		t.Errorf("Persisted map mismatch: expected %v, got %v", want, got)
	}
}

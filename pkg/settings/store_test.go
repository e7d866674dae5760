package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	store, err := NewSQLiteStore(dataDir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	if store.DataDir() != dataDir {
		t.Errorf("Expected dataDir %s, got %s", dataDir, store.DataDir())
	}

	// Check if database file was created
	dbFile := filepath.Join(dataDir, DBFile)
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		t.Error("Expected database file to be created")
	}
}

func TestSetGetDelete(t *testing.T) {
	store, err := NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.Get(KeyWorkspaceDir); err != nil || ok {
		t.Fatalf("Expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(KeyWorkspaceDir, "/srv/one"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := store.Set(KeyWorkspaceDir, "/srv/two"); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}

	value, ok, err := store.Get(KeyWorkspaceDir)
	if err != nil || !ok {
		t.Fatalf("Expected key to be present, got ok=%v err=%v", ok, err)
	}
	if value != "/srv/two" {
		t.Errorf("Expected /srv/two, got %s", value)
	}

	if err := store.Delete(KeyWorkspaceDir); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, ok, _ := store.Get(KeyWorkspaceDir); ok {
		t.Error("Expected key to be gone after delete")
	}

	// Deleting twice is fine
	if err := store.Delete(KeyWorkspaceDir); err != nil {
		t.Errorf("Expected second delete to succeed, got %v", err)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	dataDir := t.TempDir()

	store, err := NewSQLiteStore(dataDir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Set(KeyWorkspaceDir, "/srv/ws"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	store.Close()

	reopened, err := NewSQLiteStore(dataDir)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	all, err := reopened.All()
	if err != nil {
		t.Fatalf("Failed to list settings: %v", err)
	}
	if len(all) != 2 || all[KeyWorkspaceDir] != "/srv/ws" || all["theme"] != "dark" {
		t.Errorf("Unexpected settings after reopen: %v", all)
	}
}

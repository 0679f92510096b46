package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  secret-token \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}

	got, err := Load(Source{Name: "backend token", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != "secret-token" {
		t.Fatalf("expected trimmed token, got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(Source{Name: "backend token", File: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()

	_, err := Load(Source{Name: "backend token"})
	if err == nil {
		t.Fatalf("expected an error when nothing is configured")
	}
}

func TestFileStoreReadAndClear(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("tok"), 0o600); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}

	store := NewFileStore("backend token", path)

	got, err := store.Read()
	if err != nil {
		t.Fatalf("unexpected read error: %s", err)
	}
	if got != "tok" {
		t.Fatalf("unexpected token: %q", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("unexpected clear error: %s", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected credential file to be removed")
	}

	// Clearing twice is fine: a missing file is already cleared.
	if err := store.Clear(); err != nil {
		t.Fatalf("unexpected error clearing a missing file: %s", err)
	}

	if _, err := store.Read(); err == nil {
		t.Fatalf("expected read to fail after clear")
	}
}

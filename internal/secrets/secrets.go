package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
}

// Load returns the resolved secret value from the provided source. The
// returned secret is always trimmed. An error is returned when neither File
// nor Value contain a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty", name, src.File)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}

// Store is an external credential store. The CLI reads a credential to
// attach to requests and clears it on sign-out; it never writes one.
type Store interface {
	Read() (string, error)
	Clear() error
}

// FileStore keeps a credential in a single file on disk.
type FileStore struct {
	// Name is used in error messages, same as Source.Name.
	Name string
	// Path is the credential file location.
	Path string
}

func NewFileStore(name, path string) *FileStore {
	return &FileStore{Name: name, Path: path}
}

func (s *FileStore) Read() (string, error) {
	return Load(Source{Name: s.Name, File: s.Path})
}

// Clear removes the credential file. A missing file counts as already
// cleared.
func (s *FileStore) Clear() error {
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return errors.New("credential file is not configured")
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing credential file %q: %w", path, err)
	}

	return nil
}

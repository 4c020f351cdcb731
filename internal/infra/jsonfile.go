package infra

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// JSONFile is a collection persisted as one JSON array, read whole and
// rewritten whole. Every mutation runs under the file's mutex and is written
// to a temp file that is renamed over the original.
type JSONFile[T any] struct {
	mu   sync.Mutex
	path string
}

// NewJSONFile creates the parent directory and initialises the file to []
// when it does not exist.
func NewJSONFile[T any](path string) (*JSONFile[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f := &JSONFile[T]{path: path}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := f.write([]T{}); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *JSONFile[T]) Path() string {
	return f.path
}

func (f *JSONFile[T]) Load() ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// Mutate applies fn to the current collection and persists what it returns.
// Nothing is written when fn fails. A corrupt file is reported instead of
// being overwritten.
func (f *JSONFile[T]) Mutate(fn func(items []T) ([]T, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return f.write(items)
}

func (f *JSONFile[T]) read() ([]T, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(f.path), err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (f *JSONFile[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, f.path)
}

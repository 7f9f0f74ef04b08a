// Package store provides the engine's result stores: an in-process map
// for embedded use and a file-backed store so CLI invocations can look
// up results from earlier runs.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/deaffirst/deafcheck/internal/domain"
)

// Memory is a concurrency-safe in-process ResultStore. Results are
// write-once: a second Put for the same id is a no-op.
type Memory struct {
	mu      sync.RWMutex
	results map[string]*domain.ValidationResult
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{results: make(map[string]*domain.ValidationResult)}
}

// Put stores a finished result. Re-putting an existing id keeps the
// first write.
func (m *Memory) Put(_ context.Context, result *domain.ValidationResult) error {
	if result == nil || result.ID == "" {
		return fmt.Errorf("store: result must have an id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.results[result.ID]; !exists {
		m.results[result.ID] = result
	}
	return nil
}

// Get returns the result for id, or domain.ErrNotFound.
func (m *Memory) Get(_ context.Context, id string) (*domain.ValidationResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, ok := m.results[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return result, nil
}

// File persists results as one JSON document per id under
// <root>/.deafcheck/results. It shares write-once semantics with Memory.
type File struct {
	root string
}

// NewFile creates a file-backed store rooted at root (typically the
// working directory).
func NewFile(root string) *File {
	return &File{root: root}
}

// Put writes a result to disk, creating directories as needed. An
// existing file for the same id is kept untouched.
func (f *File) Put(_ context.Context, result *domain.ValidationResult) error {
	if result == nil || result.ID == "" {
		return fmt.Errorf("store: result must have an id")
	}
	dir := f.dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := f.path(result.ID)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	// Write through a temp file so a crashed process never leaves a
	// half-written result behind.
	tmp, err := os.CreateTemp(dir, result.ID+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Get reads the result for id from disk, or returns domain.ErrNotFound.
func (f *File) Get(_ context.Context, id string) (*domain.ValidationResult, error) {
	data, err := os.ReadFile(f.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var result domain.ValidationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (f *File) dir() string {
	return filepath.Join(f.root, ".deafcheck", "results")
}

func (f *File) path(id string) string {
	return filepath.Join(f.dir(), id+".json")
}

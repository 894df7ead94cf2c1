// Package storage resolves source artifact references for export jobs.
package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// ContentStore looks up source content for a job. The pipeline only
// needs existence and bytes; interpretation is the processor's concern.
type ContentStore interface {
	GetSourceContent(ctx context.Context, ref string) ([]byte, error)
}

// LocalStore reads sources from the local filesystem under a root directory
type LocalStore struct {
	Root string
}

// NewLocalStore creates a filesystem-backed content store
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

// GetSourceContent reads the referenced file relative to the store root
func (s *LocalStore) GetSourceContent(_ context.Context, ref string) ([]byte, error) {
	if strings.Contains(ref, "..") {
		return nil, fmt.Errorf("invalid source reference: %s", ref)
	}
	data, err := os.ReadFile(s.Root + "/" + ref)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", ref, err)
	}
	return data, nil
}

// MemoryStore serves sources from an in-memory map. Used by tests and
// as the default store when no backend is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	sources map[string][]byte
}

// NewMemoryStore creates an in-memory content store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sources: make(map[string][]byte)}
}

// Put stores content under a reference
func (s *MemoryStore) Put(ref string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[ref] = content
}

// GetSourceContent returns the content stored under a reference
func (s *MemoryStore) GetSourceContent(_ context.Context, ref string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.sources[ref]
	if !ok {
		return nil, fmt.Errorf("source not found: %s", ref)
	}
	return content, nil
}

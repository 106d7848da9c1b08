package blobstore

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore is an in-process Store used in tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailPut, FailSign and FailDelete inject collaborator failures in tests.
	FailPut    bool
	FailSign   bool
	FailDelete bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if s.FailPut {
		return fmt.Errorf("memory store: put failure injected")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SignedURL(ctx context.Context, key string) (string, error) {
	if s.FailSign {
		return "", fmt.Errorf("memory store: sign failure injected")
	}
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("memory store: object %s not found", key)
	}
	return "memory://" + key + "?expires=300", nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if s.FailDelete {
		return fmt.Errorf("memory store: delete failure injected")
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Get exposes stored bytes to tests.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Len reports how many objects are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

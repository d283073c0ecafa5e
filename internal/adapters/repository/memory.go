package repository

import (
	"context"
	"sync"
)

// MemoryBackend keeps the document in process memory. It is the reference
// backend for tests and for running without durability.
type MemoryBackend struct {
	mu  sync.Mutex
	doc Document
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load implements Backend.
func (b *MemoryBackend) Load(_ context.Context) (Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Clone(), nil
}

// Save implements Backend.
func (b *MemoryBackend) Save(_ context.Context, doc Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.doc = doc.Clone()
	return nil
}

// Close implements Backend.
func (b *MemoryBackend) Close() error {
	return nil
}

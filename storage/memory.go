package storage

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
)

// MemoryStore is an in-process OffchainStore for tests and local tooling.
// References are the keccak hash of the stored bytes, hex-encoded.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory envelope store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Put stores the envelope under its content hash and returns the reference.
func (s *MemoryStore) Put(_ context.Context, data []byte) (string, error) {
	ref := hex.EncodeToString(crypto.Keccak256(data))

	s.mu.Lock()
	s.data[ref] = append([]byte(nil), data...)
	s.mu.Unlock()

	return ref, nil
}

// Get returns the envelope stored under ref, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, ref string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.data[ref]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Available always reports true.
func (s *MemoryStore) Available(context.Context) bool {
	return true
}

// Name returns a unique identifier for this storage backend.
func (s *MemoryStore) Name() string {
	return "memory"
}

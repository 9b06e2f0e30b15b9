// Package storage persists signed off-chain attestation envelopes.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no envelope exists under the requested
// reference.
var ErrNotFound = errors.New("envelope not found")

// ErrBackendUnavailable is returned when the storage backend cannot be
// reached.
var ErrBackendUnavailable = errors.New("storage backend unavailable")

// OffchainStore stores serialized off-chain attestation envelopes. Put
// returns a backend-specific reference (an IPFS CID, for example) under which
// Get retrieves the exact bytes.
type OffchainStore interface {
	Put(ctx context.Context, data []byte) (string, error)
	Get(ctx context.Context, ref string) ([]byte, error)

	// Available checks if the backend is accessible.
	Available(ctx context.Context) bool

	// Name returns a unique identifier for this storage backend.
	Name() string
}

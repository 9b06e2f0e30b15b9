// Package storage provides backends for persisting signed off-chain
// attestation envelopes.
//
// An envelope is stored as the exact bytes produced by
// attest.OffchainAttestation.Marshal, keyed by a backend-specific reference.
// The IPFS backend returns the content's CID, so a reference published
// alongside an attestation UID lets anyone fetch and re-verify the envelope
// without trusting the storage operator. The memory backend exists for tests
// and local tooling.
//
// Backends distinguish "content does not exist" (ErrNotFound) from "backend
// cannot be reached" (ErrBackendUnavailable) so callers can decide whether a
// miss is authoritative.
package storage

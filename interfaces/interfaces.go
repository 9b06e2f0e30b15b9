package interfaces

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// ErrSchemaNotFound is returned when a queried schema UID resolves to the
// zero sentinel in the registry.
var ErrSchemaNotFound = errors.New("schema not found")

// ErrAttestationNotFound is returned when a queried attestation UID resolves
// to the zero sentinel.
var ErrAttestationNotFound = errors.New("attestation not found")

// ErrInvalidSigner is returned when signature verification is requested
// against the zero address. The zero address is never a valid signer;
// treating it as an ordinary mismatch would be a dangerous false negative.
var ErrInvalidSigner = errors.New("invalid expected signer: zero address")

// ErrNoTransactOpts is returned when a transaction is attempted without first
// setting transaction options.
var ErrNoTransactOpts = errors.New("no authorized transactor available")

// TypedDataSigner is the signing capability consumed by the typed-data
// handler. Implementations own key custody entirely: a local key, a hardware
// wallet, or a remote custody service all satisfy it. SignTypedData returns
// the raw 65-byte [R || S || V] signature over the EIP-712 digest of data.
//
// Signing may suspend on user interaction or network round-trips; the caller
// controls cancellation through ctx.
type TypedDataSigner interface {
	SignTypedData(ctx context.Context, data apitypes.TypedData) ([]byte, error)
}

// SchemaRegistry abstracts the on-chain schema registry contract.
type SchemaRegistry interface {
	// Register submits a schema registration transaction.
	Register(schema string, resolver common.Address, revocable bool) (*types.Transaction, error)

	// GetSchema retrieves a schema record by its UID. Returns
	// ErrSchemaNotFound if the registry holds no record under uid.
	GetSchema(ctx context.Context, uid UID) (*SchemaRecord, error)
}

// AttestationService is the full attestation contract surface: the
// state-changing calls plus the read side.
type AttestationService interface {
	// Attest submits an attestation transaction.
	Attest(req *AttestationRequest) (*types.Transaction, error)

	// Revoke submits a revocation transaction for a previously issued
	// attestation.
	Revoke(req *RevocationRequest) (*types.Transaction, error)

	AttestationVerifier
}

// AttestationVerifier abstracts read access to the attestation contract.
type AttestationVerifier interface {
	// GetAttestation retrieves an attestation by its UID. Returns
	// ErrAttestationNotFound if no attestation exists under uid.
	GetAttestation(ctx context.Context, uid UID) (*Attestation, error)

	// IsAttestationValid reports whether an attestation exists under uid.
	IsAttestationValid(ctx context.Context, uid UID) (bool, error)
}

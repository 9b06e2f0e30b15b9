package eip712

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// LocalSigner signs typed data with an in-process secp256k1 private key. It
// is the simplest custody backend satisfying the Signer capability; remote
// or hardware-backed signers implement the same interface.
type LocalSigner struct {
	key *ecdsa.PrivateKey
}

// NewLocalSigner wraps an existing private key.
func NewLocalSigner(key *ecdsa.PrivateKey) *LocalSigner {
	return &LocalSigner{key: key}
}

// Address returns the Ethereum address controlled by the signer's key.
func (s *LocalSigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// SignTypedData hashes the typed data per EIP-712 and signs the digest,
// returning the raw 65-byte [R || S || V] signature with V in 0/1 form.
func (s *LocalSigner) SignTypedData(_ context.Context, data apitypes.TypedData) ([]byte, error) {
	digest, _, err := apitypes.TypedDataAndHash(data)
	if err != nil {
		return nil, fmt.Errorf("hash typed data: %w", err)
	}

	return crypto.Sign(digest, s.key)
}

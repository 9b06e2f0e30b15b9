package attest

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/attestprotocol/eas-go/eip712"
)

// Typed-data tables for delegated operations. The nonce binds each signed
// payload to one slot in the contract's per-attester nonce sequence.
var (
	delegatedAttestTypes = apitypes.Types{
		"Attest": []apitypes.Type{
			{Name: "schema", Type: "bytes32"},
			{Name: "recipient", Type: "address"},
			{Name: "expirationTime", Type: "uint64"},
			{Name: "revocable", Type: "bool"},
			{Name: "refUID", Type: "bytes32"},
			{Name: "data", Type: "bytes"},
			{Name: "nonce", Type: "uint256"},
		},
	}

	delegatedRevokeTypes = apitypes.Types{
		"Revoke": []apitypes.Type{
			{Name: "schema", Type: "bytes32"},
			{Name: "uid", Type: "bytes32"},
			{Name: "nonce", Type: "uint256"},
		},
	}
)

// NewDelegatedAttestationRequest builds the unsigned typed-data envelope for
// a delegated attestation. Signing it through a TypedDataHandler bound to the
// attestation contract's domain produces a payload a relayer can submit on
// the attester's behalf.
func NewDelegatedAttestationRequest(req *AttestationRequest, nonce *big.Int) *eip712.Request {
	return &eip712.Request{
		PrimaryType: "Attest",
		Types:       delegatedAttestTypes,
		Message: apitypes.TypedDataMessage{
			"schema":         req.Schema.String(),
			"recipient":      req.Data.Recipient.Hex(),
			"expirationTime": (*math.HexOrDecimal256)(new(big.Int).SetUint64(req.Data.ExpirationTime)),
			"revocable":      req.Data.Revocable,
			"refUID":         req.Data.RefUID.String(),
			"data":           hexutil.Encode(req.Data.Data),
			"nonce":          (*math.HexOrDecimal256)(nonce),
		},
	}
}

// NewDelegatedRevocationRequest builds the unsigned typed-data envelope for a
// delegated revocation.
func NewDelegatedRevocationRequest(req *RevocationRequest, nonce *big.Int) *eip712.Request {
	return &eip712.Request{
		PrimaryType: "Revoke",
		Types:       delegatedRevokeTypes,
		Message: apitypes.TypedDataMessage{
			"schema": req.Schema.String(),
			"uid":    req.Data.UID.String(),
			"nonce":  (*math.HexOrDecimal256)(nonce),
		},
	}
}

// Package interfaces defines the core types and interfaces shared across the
// attestation SDK. It provides the contract between components without
// implementation details.
package interfaces

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// UID is a 32-byte content-derived identifier for a schema or attestation.
// UIDs are pure derived values with value equality; the all-zero UID is the
// "not found" sentinel and never identifies an existing record.
type UID [32]byte

// ZeroUID is the sentinel value denoting a missing record.
var ZeroUID = UID{}

// UIDFromBytes creates a UID from a raw 32-byte slice.
func UIDFromBytes(b []byte) (UID, error) {
	if len(b) != 32 {
		return UID{}, errors.New("invalid uid length: must be 32 bytes")
	}

	var uid UID
	copy(uid[:], b)
	return uid, nil
}

// UIDFromHex creates a UID from a hex string, with or without a 0x prefix.
func UIDFromHex(s string) (UID, error) {
	clean := strings.TrimPrefix(s, "0x")
	if len(clean) != 64 {
		return UID{}, errors.New("invalid uid length: hex string must be 64 characters")
	}

	b, err := hex.DecodeString(clean)
	if err != nil {
		return UID{}, fmt.Errorf("invalid hex format: %w", err)
	}

	return UIDFromBytes(b)
}

// String returns the 0x-prefixed hex representation of the UID.
func (u UID) String() string {
	return "0x" + hex.EncodeToString(u[:])
}

// Bytes returns the raw 32-byte identifier.
func (u UID) Bytes() []byte {
	return u[:]
}

// IsZero reports whether the UID equals the not-found sentinel.
func (u UID) IsZero() bool {
	return u == ZeroUID
}

// Equal compares two UIDs for equality.
func (u UID) Equal(other UID) bool {
	return u == other
}

// MarshalText implements encoding.TextMarshaler so UIDs serialize as
// 0x-prefixed hex in JSON envelopes.
func (u UID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UID) UnmarshalText(text []byte) error {
	parsed, err := UIDFromHex(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// SchemaRecord is a schema entry as stored by the on-chain schema registry.
// The UID of an existing record is never zero.
type SchemaRecord struct {
	UID       UID            `json:"uid"`
	Resolver  common.Address `json:"resolver"`
	Revocable bool           `json:"revocable"`
	Schema    string         `json:"schema"`
}

// AttestationRequestData carries the per-attestation fields of an attest
// call. A nil Value is sent as zero.
type AttestationRequestData struct {
	Recipient      common.Address
	ExpirationTime uint64
	Revocable      bool
	RefUID         UID
	Data           []byte
	Value          *big.Int
}

// AttestationRequest is the argument tuple of the attestation contract's
// attest call.
type AttestationRequest struct {
	Schema UID
	Data   AttestationRequestData
}

// RevocationRequestData carries the per-revocation fields of a revoke call.
type RevocationRequestData struct {
	UID   UID
	Value *big.Int
}

// RevocationRequest is the argument tuple of the attestation contract's
// revoke call.
type RevocationRequest struct {
	Schema UID
	Data   RevocationRequestData
}

// Attestation is an attestation record as stored by the attestation contract.
// RevocationTime is zero while the attestation has not been revoked;
// ExpirationTime zero means the attestation never expires.
type Attestation struct {
	UID            UID            `json:"uid"`
	Schema         UID            `json:"schema"`
	Time           uint64         `json:"time"`
	ExpirationTime uint64         `json:"expirationTime"`
	RevocationTime uint64         `json:"revocationTime"`
	RefUID         UID            `json:"refUID"`
	Recipient      common.Address `json:"recipient"`
	Attester       common.Address `json:"attester"`
	Revocable      bool           `json:"revocable"`
	Data           []byte         `json:"data"`
}

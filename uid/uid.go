// Package uid computes the canonical content-derived identifiers used by the
// attestation protocol.
//
// Identifiers are Keccak-256 hashes over a packed encoding of an exhaustively
// ordered field tuple, so a client can predict the UID a contract call will
// assign before the on-chain artifact exists, and the contract's own
// derivation matches bit-for-bit. Field order and widths are the
// cross-implementation compatibility surface; do not change them.
package uid

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/atomic"

	"github.com/attestprotocol/eas-go/interfaces"
)

// DeriveAttestationUID computes the UID of an attestation from its full field
// tuple. The tuple is packed as
//
//	(bytes(schema), address, address, uint64, uint64, bool, bytes32, bytes, uint32)
//
// with big-endian fixed-width integers and a single 0x00/0x01 byte for the
// bool, then hashed with Keccak-256. The derivation is total: it never fails
// for well-typed inputs. Changing any field, including bump, changes the
// output.
//
// The bump counter disambiguates otherwise-identical attestations submitted
// in rapid succession. It is an opaque caller-supplied discriminant; this
// package never increments it implicitly.
func DeriveAttestationUID(schema string, recipient, attester common.Address, time, expirationTime uint64, revocable bool, refUID interfaces.UID, data []byte, bump uint32) interfaces.UID {
	buf := make([]byte, 0, len(schema)+2*common.AddressLength+8+8+1+32+len(data)+4)
	buf = append(buf, schema...)
	buf = append(buf, recipient.Bytes()...)
	buf = append(buf, attester.Bytes()...)
	buf = binary.BigEndian.AppendUint64(buf, time)
	buf = binary.BigEndian.AppendUint64(buf, expirationTime)
	buf = append(buf, packBool(revocable))
	buf = append(buf, refUID[:]...)
	buf = append(buf, data...)
	buf = binary.BigEndian.AppendUint32(buf, bump)

	return interfaces.UID(crypto.Keccak256Hash(buf))
}

// DeriveSchemaUID computes the canonical key under which a schema is stored
// in the registry: Keccak-256 over packed (string, address, bool).
func DeriveSchemaUID(schema string, resolver common.Address, revocable bool) interfaces.UID {
	buf := make([]byte, 0, len(schema)+common.AddressLength+1)
	buf = append(buf, schema...)
	buf = append(buf, resolver.Bytes()...)
	buf = append(buf, packBool(revocable))

	return interfaces.UID(crypto.Keccak256Hash(buf))
}

func packBool(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// BumpSequence is a goroutine-safe monotonically increasing source of bump
// counters, for callers that batch attestations with otherwise-identical
// fields. The zero value is ready to use and starts at 0.
type BumpSequence struct {
	n atomic.Uint32
}

// Next returns the current counter value and advances the sequence.
func (s *BumpSequence) Next() uint32 {
	return s.n.Add(1) - 1
}

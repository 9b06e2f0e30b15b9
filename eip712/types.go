package eip712

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// TypedDataConfig identifies exactly one EIP-712 signing domain. It is an
// explicit immutable value passed at handler construction and never mutated.
type TypedDataConfig struct {
	// Address is the verifying contract.
	Address common.Address
	Name    string
	Version string
	ChainID *big.Int
}

// Signature is an EIP-712 signature in canonical {r, s, v} form, with V
// normalized to 27 or 28.
type Signature struct {
	R common.Hash `json:"r"`
	S common.Hash `json:"s"`
	V uint8       `json:"v"`
}

// SignatureFromBytes normalizes a raw 65-byte [R || S || V] signature into
// canonical form. V is accepted as 0/1 (the form secp256k1 signers emit) or
// as the pre-normalized 27/28.
func SignatureFromBytes(raw []byte) (Signature, error) {
	if len(raw) != 65 {
		return Signature{}, errors.New("invalid signature length: must be 65 bytes")
	}

	v := raw[64]
	if v < 27 {
		v += 27
	}
	if v != 27 && v != 28 {
		return Signature{}, errors.New("invalid signature recovery id")
	}

	return Signature{
		R: common.BytesToHash(raw[:32]),
		S: common.BytesToHash(raw[32:64]),
		V: v,
	}, nil
}

// Bytes returns the 65-byte [R || S || V] form with V as 27/28.
func (s Signature) Bytes() []byte {
	raw := make([]byte, 65)
	copy(raw[:32], s.R[:])
	copy(raw[32:64], s.S[:])
	raw[64] = s.V
	return raw
}

// recoveryBytes returns the signature with V in the 0/1 form expected by
// crypto.SigToPub.
func (s Signature) recoveryBytes() []byte {
	raw := s.Bytes()
	if raw[64] >= 27 {
		raw[64] -= 27
	}
	return raw
}

// Request is the unsigned structured-data envelope. Types declares the
// message's own type table; the handler injects the canonical EIP712Domain
// entry and the domain values when hashing, so request templates never carry
// domain state of their own.
type Request struct {
	Domain      apitypes.TypedDataDomain  `json:"domain"`
	PrimaryType string                    `json:"primaryType"`
	Types       apitypes.Types            `json:"types"`
	Message     apitypes.TypedDataMessage `json:"message"`
}

// clone returns a Request with its own type table and message map, so the
// copy shares no mutable state with the original. Message values themselves
// are treated as immutable, as apitypes requires.
func (r *Request) clone() Request {
	types := make(apitypes.Types, len(r.Types))
	for name, fields := range r.Types {
		types[name] = append([]apitypes.Type(nil), fields...)
	}

	message := make(apitypes.TypedDataMessage, len(r.Message))
	for name, value := range r.Message {
		message[name] = value
	}

	return Request{
		Domain:      r.Domain,
		PrimaryType: r.PrimaryType,
		Types:       types,
		Message:     message,
	}
}

// Response is a Request after signing: the same envelope plus the canonical
// signature. Requests and responses are value objects; each one is
// independently constructed and shares no mutable state with the handler or
// with the request it was signed from.
type Response struct {
	Request
	Signature Signature `json:"signature"`
}

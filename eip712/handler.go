package eip712

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/attestprotocol/eas-go/interfaces"
)

// eip712DomainTypeString is hashed into every domain separator and must match
// the contract side byte for byte.
const eip712DomainTypeString = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"

var eip712DomainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

// Signer is the external signing capability consumed by the handler.
type Signer = interfaces.TypedDataSigner

// TypedDataHandler signs and verifies EIP-712 typed-data requests for one
// signing domain. A handler is constructed once per domain and reused for the
// lifetime of that domain's interactions; it holds no per-call mutable state,
// so arbitrarily many calls may proceed concurrently.
type TypedDataHandler struct {
	config TypedDataConfig
}

// NewTypedDataHandler creates a handler bound to the given domain
// configuration.
func NewTypedDataHandler(config TypedDataConfig) *TypedDataHandler {
	return &TypedDataHandler{config: config}
}

// Config returns a copy of the handler's domain configuration.
func (h *TypedDataHandler) Config() TypedDataConfig {
	return h.config
}

// DomainSeparator computes the EIP-712 domain separator:
//
//	Keccak256(ABIEncode(Keccak256(domain typestring), Keccak256(name),
//	          Keccak256(version), chainId, verifyingContract))
//
// The value pins all signatures to one (contract, chain, name, version)
// tuple, preventing cross-domain replay.
func (h *TypedDataHandler) DomainSeparator() common.Hash {
	enc := make([]byte, 0, 5*common.HashLength)
	enc = append(enc, crypto.Keccak256([]byte(eip712DomainTypeString))...)
	enc = append(enc, crypto.Keccak256([]byte(h.config.Name))...)
	enc = append(enc, crypto.Keccak256([]byte(h.config.Version))...)
	enc = append(enc, common.BigToHash(h.config.ChainID).Bytes()...)
	enc = append(enc, common.BytesToHash(h.config.Address.Bytes()).Bytes()...)

	return crypto.Keccak256Hash(enc)
}

// DomainTypedData returns the plain-data projection of the domain for
// embedding in request payloads sent to external signing providers.
func (h *TypedDataHandler) DomainTypedData() apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              h.config.Name,
		Version:           h.config.Version,
		ChainId:           (*math.HexOrDecimal256)(h.config.ChainID),
		VerifyingContract: h.config.Address.Hex(),
	}
}

// SignTypedDataRequest delegates the structured signature computation to the
// caller-supplied signer, normalizes the raw signature into canonical
// {r, s, v} form, and returns the request augmented with it.
//
// The handler performs no I/O of its own: signing is the one point where
// control suspends on the external capability, which may prompt a user or
// call a remote custody service. No timeout is imposed and the signer's
// outcome propagates unchanged; cancellation and retry policy belong to the
// caller.
func (h *TypedDataHandler) SignTypedDataRequest(ctx context.Context, req *Request, signer Signer) (*Response, error) {
	raw, err := signer.SignTypedData(ctx, h.typedData(req))
	if err != nil {
		return nil, fmt.Errorf("typed data signer: %w", err)
	}

	sig, err := SignatureFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("signer returned malformed signature: %w", err)
	}

	resp := &Response{Request: req.clone(), Signature: sig}
	resp.Domain = h.DomainTypedData()
	return resp, nil
}

// VerifyTypedDataRequestSignature recovers the signer of a response under the
// handler's domain and reports whether it matches expected.
//
// A zero expected address is a caller programming error and fails immediately
// with interfaces.ErrInvalidSigner. Every other outcome is a boolean: a
// mismatching recovered signer, a malformed signature, or a message that does
// not hash under its declared types all return (false, nil) and must be
// treated as "reject", never as "retry". Verification is side-effect-free and
// never touches the handler's configuration.
func (h *TypedDataHandler) VerifyTypedDataRequestSignature(expected common.Address, resp *Response) (bool, error) {
	if expected == (common.Address{}) {
		return false, interfaces.ErrInvalidSigner
	}

	digest, _, err := apitypes.TypedDataAndHash(h.typedData(&resp.Request))
	if err != nil {
		return false, nil
	}

	pubkey, err := crypto.SigToPub(digest, resp.Signature.recoveryBytes())
	if err != nil {
		return false, nil
	}

	recovered := crypto.PubkeyToAddress(*pubkey)
	return recovered == expected, nil
}

// typedData assembles the full typed-data structure under the handler's
// domain. The request's type table is copied, never mutated.
func (h *TypedDataHandler) typedData(req *Request) apitypes.TypedData {
	types := make(apitypes.Types, len(req.Types)+1)
	for name, fields := range req.Types {
		types[name] = fields
	}
	if _, ok := types["EIP712Domain"]; !ok {
		types["EIP712Domain"] = eip712DomainType
	}

	return apitypes.TypedData{
		Types:       types,
		PrimaryType: req.PrimaryType,
		Domain:      h.DomainTypedData(),
		Message:     req.Message,
	}
}

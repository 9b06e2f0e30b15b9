package attest

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/google/uuid"

	"github.com/attestprotocol/eas-go/eip712"
	"github.com/attestprotocol/eas-go/interfaces"
	"github.com/attestprotocol/eas-go/uid"
)

// OffchainVersion identifies the off-chain attestation payload layout.
const OffchainVersion uint16 = 1

var offchainAttestTypes = apitypes.Types{
	"Attest": []apitypes.Type{
		{Name: "version", Type: "uint16"},
		{Name: "schema", Type: "bytes32"},
		{Name: "recipient", Type: "address"},
		{Name: "time", Type: "uint64"},
		{Name: "expirationTime", Type: "uint64"},
		{Name: "revocable", Type: "bool"},
		{Name: "refUID", Type: "bytes32"},
		{Name: "data", Type: "bytes"},
	},
}

// OffchainAttestationParams are the attester-chosen fields of an off-chain
// attestation. Bump disambiguates otherwise-identical attestations issued in
// rapid succession; it is caller-managed (see uid.BumpSequence).
type OffchainAttestationParams struct {
	Schema         interfaces.UID
	Recipient      common.Address
	Time           uint64
	ExpirationTime uint64
	Revocable      bool
	RefUID         interfaces.UID
	Data           []byte
	Bump           uint32
}

// OffchainAttestation is a self-contained signed attestation that never
// touches the chain. Verification reconstructs the typed-data payload from
// the envelope fields, so the signature covers exactly what the envelope
// claims.
type OffchainAttestation struct {
	// ID is an opaque correlation identifier assigned at signing time.
	ID             string           `json:"id"`
	Version        uint16           `json:"version"`
	UID            interfaces.UID   `json:"uid"`
	Attester       common.Address   `json:"attester"`
	Schema         interfaces.UID   `json:"schema"`
	Recipient      common.Address   `json:"recipient"`
	Time           uint64           `json:"time"`
	ExpirationTime uint64           `json:"expirationTime"`
	Revocable      bool             `json:"revocable"`
	RefUID         interfaces.UID   `json:"refUID"`
	Data           hexutil.Bytes    `json:"data"`
	Bump           uint32           `json:"bump"`
	Signature      eip712.Signature `json:"signature"`
}

// Marshal serializes the envelope for transport or off-chain storage.
func (a *OffchainAttestation) Marshal() ([]byte, error) {
	return json.Marshal(a)
}

// UnmarshalOffchainAttestation parses an envelope produced by Marshal.
func UnmarshalOffchainAttestation(data []byte) (*OffchainAttestation, error) {
	var att OffchainAttestation
	if err := json.Unmarshal(data, &att); err != nil {
		return nil, err
	}
	return &att, nil
}

// Offchain signs and verifies off-chain attestations under one attestation
// contract's signing domain. Like the underlying typed-data handler it is
// immutable and safe for concurrent use.
type Offchain struct {
	handler *eip712.TypedDataHandler
}

// NewOffchain creates an off-chain attestation signer/verifier for the given
// domain configuration.
func NewOffchain(config eip712.TypedDataConfig) *Offchain {
	return &Offchain{handler: eip712.NewTypedDataHandler(config)}
}

// Sign produces a signed off-chain attestation issued by the signer's
// principal. The envelope UID is derived from the same field tuple used for
// on-chain attestations, so an off-chain attestation later submitted on-chain
// keeps its identifier.
func (o *Offchain) Sign(ctx context.Context, params *OffchainAttestationParams, attester common.Address, signer eip712.Signer) (*OffchainAttestation, error) {
	resp, err := o.handler.SignTypedDataRequest(ctx, offchainRequest(params), signer)
	if err != nil {
		return nil, err
	}

	return &OffchainAttestation{
		ID:             uuid.NewString(),
		Version:        OffchainVersion,
		UID:            offchainUID(params, attester),
		Attester:       attester,
		Schema:         params.Schema,
		Recipient:      params.Recipient,
		Time:           params.Time,
		ExpirationTime: params.ExpirationTime,
		Revocable:      params.Revocable,
		RefUID:         params.RefUID,
		Data:           append([]byte(nil), params.Data...),
		Bump:           params.Bump,
		Signature:      resp.Signature,
	}, nil
}

// Verify checks an off-chain attestation envelope: the payload layout
// version, the envelope UID against its re-derivation, and the attester's
// signature over the reconstructed typed data. A zero attester address fails
// with interfaces.ErrInvalidSigner; every other defect is a boolean reject.
func (o *Offchain) Verify(att *OffchainAttestation) (bool, error) {
	if att.Attester == (common.Address{}) {
		return false, interfaces.ErrInvalidSigner
	}
	if att.Version != OffchainVersion {
		return false, nil
	}

	params := &OffchainAttestationParams{
		Schema:         att.Schema,
		Recipient:      att.Recipient,
		Time:           att.Time,
		ExpirationTime: att.ExpirationTime,
		Revocable:      att.Revocable,
		RefUID:         att.RefUID,
		Data:           att.Data,
		Bump:           att.Bump,
	}
	if att.UID != offchainUID(params, att.Attester) {
		return false, nil
	}

	resp := &eip712.Response{Request: *offchainRequest(params), Signature: att.Signature}
	return o.handler.VerifyTypedDataRequestSignature(att.Attester, resp)
}

func offchainRequest(p *OffchainAttestationParams) *eip712.Request {
	return &eip712.Request{
		PrimaryType: "Attest",
		Types:       offchainAttestTypes,
		Message: apitypes.TypedDataMessage{
			"version":        math.NewHexOrDecimal256(int64(OffchainVersion)),
			"schema":         p.Schema.String(),
			"recipient":      p.Recipient.Hex(),
			"time":           (*math.HexOrDecimal256)(new(big.Int).SetUint64(p.Time)),
			"expirationTime": (*math.HexOrDecimal256)(new(big.Int).SetUint64(p.ExpirationTime)),
			"revocable":      p.Revocable,
			"refUID":         p.RefUID.String(),
			"data":           hexutil.Encode(p.Data),
		},
	}
}

func offchainUID(p *OffchainAttestationParams, attester common.Address) interfaces.UID {
	return uid.DeriveAttestationUID(p.Schema.String(), p.Recipient, attester, p.Time, p.ExpirationTime, p.Revocable, p.RefUID, p.Data, p.Bump)
}

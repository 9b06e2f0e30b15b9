// Package attest provides a client for the on-chain attestation contract,
// typed-data request builders for delegated attestations, and signed
// off-chain attestation envelopes.
package attest

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/attestprotocol/eas-go/interfaces"
	"github.com/attestprotocol/eas-go/uid"
)

// easABI is the subset of the deployed attestation contract's interface
// consumed by this client.
const easABI = `[
{"inputs":[{"components":[{"internalType":"bytes32","name":"schema","type":"bytes32"},{"components":[{"internalType":"address","name":"recipient","type":"address"},{"internalType":"uint64","name":"expirationTime","type":"uint64"},{"internalType":"bool","name":"revocable","type":"bool"},{"internalType":"bytes32","name":"refUID","type":"bytes32"},{"internalType":"bytes","name":"data","type":"bytes"},{"internalType":"uint256","name":"value","type":"uint256"}],"internalType":"struct AttestationRequestData","name":"data","type":"tuple"}],"internalType":"struct AttestationRequest","name":"request","type":"tuple"}],"name":"attest","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"payable","type":"function"},
{"inputs":[{"components":[{"internalType":"bytes32","name":"schema","type":"bytes32"},{"components":[{"internalType":"bytes32","name":"uid","type":"bytes32"},{"internalType":"uint256","name":"value","type":"uint256"}],"internalType":"struct RevocationRequestData","name":"data","type":"tuple"}],"internalType":"struct RevocationRequest","name":"request","type":"tuple"}],"name":"revoke","outputs":[],"stateMutability":"payable","type":"function"},
{"inputs":[{"internalType":"bytes32","name":"uid","type":"bytes32"}],"name":"getAttestation","outputs":[{"components":[{"internalType":"bytes32","name":"uid","type":"bytes32"},{"internalType":"bytes32","name":"schema","type":"bytes32"},{"internalType":"uint64","name":"time","type":"uint64"},{"internalType":"uint64","name":"expirationTime","type":"uint64"},{"internalType":"uint64","name":"revocationTime","type":"uint64"},{"internalType":"bytes32","name":"refUID","type":"bytes32"},{"internalType":"address","name":"recipient","type":"address"},{"internalType":"address","name":"attester","type":"address"},{"internalType":"bool","name":"revocable","type":"bool"},{"internalType":"bytes","name":"data","type":"bytes"}],"internalType":"struct Attestation","name":"","type":"tuple"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"bytes32","name":"uid","type":"bytes32"}],"name":"isAttestationValid","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

// The request tuples are shared through the interfaces package so the
// interfaces.AttestationService contract can name them.
type AttestationRequestData = interfaces.AttestationRequestData
type AttestationRequest = interfaces.AttestationRequest
type RevocationRequestData = interfaces.RevocationRequestData
type RevocationRequest = interfaces.RevocationRequest

// contractAttestation mirrors the contract's Attestation tuple layout.
type contractAttestation struct {
	Uid            [32]byte
	Schema         [32]byte
	Time           uint64
	ExpirationTime uint64
	RevocationTime uint64
	RefUID         [32]byte
	Recipient      common.Address
	Attester       common.Address
	Revocable      bool
	Data           []byte
}

// contractAttestationRequest and friends mirror the contract's argument
// tuples for abi packing.
type contractAttestationRequestData struct {
	Recipient      common.Address
	ExpirationTime uint64
	Revocable      bool
	RefUID         [32]byte
	Data           []byte
	Value          *big.Int
}

type contractAttestationRequest struct {
	Schema [32]byte
	Data   contractAttestationRequestData
}

type contractRevocationRequestData struct {
	Uid   [32]byte
	Value *big.Int
}

type contractRevocationRequest struct {
	Schema [32]byte
	Data   contractRevocationRequestData
}

// Client interacts with an attestation contract deployed on an
// Ethereum-compatible chain. It implements interfaces.AttestationVerifier;
// state-changing calls additionally require SetTransactOpts.
type Client struct {
	contract *bind.BoundContract
	address  common.Address
	auth     *bind.TransactOpts
}

var _ interfaces.AttestationService = (*Client)(nil)

// NewClient creates a client attached to the attestation contract at the
// specified address.
func NewClient(backend bind.ContractBackend, address common.Address) (*Client, error) {
	parsed, err := abi.JSON(strings.NewReader(easABI))
	if err != nil {
		return nil, fmt.Errorf("parse attestation abi: %w", err)
	}

	return &Client{
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
		address:  address,
	}, nil
}

// Address returns the attestation contract address the client is attached to.
func (c *Client) Address() common.Address {
	return c.address
}

// SetTransactOpts sets the transaction options required for functions that
// modify state.
func (c *Client) SetTransactOpts(auth *bind.TransactOpts) {
	c.auth = auth
}

// Attest submits an attestation transaction.
// Returns the transaction and an error if the transaction could not be sent.
func (c *Client) Attest(req *AttestationRequest) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNoTransactOpts
	}

	value := req.Data.Value
	if value == nil {
		value = new(big.Int)
	}

	return c.contract.Transact(c.auth, "attest", contractAttestationRequest{
		Schema: req.Schema,
		Data: contractAttestationRequestData{
			Recipient:      req.Data.Recipient,
			ExpirationTime: req.Data.ExpirationTime,
			Revocable:      req.Data.Revocable,
			RefUID:         req.Data.RefUID,
			Data:           req.Data.Data,
			Value:          value,
		},
	})
}

// Revoke submits a revocation transaction for a previously issued
// attestation.
func (c *Client) Revoke(req *RevocationRequest) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNoTransactOpts
	}

	value := req.Data.Value
	if value == nil {
		value = new(big.Int)
	}

	return c.contract.Transact(c.auth, "revoke", contractRevocationRequest{
		Schema: req.Schema,
		Data: contractRevocationRequestData{
			Uid:   req.Data.UID,
			Value: value,
		},
	})
}

// GetAttestation retrieves an attestation by its UID. A record whose UID
// equals the zero sentinel is reported as interfaces.ErrAttestationNotFound.
func (c *Client) GetAttestation(ctx context.Context, attestationUID interfaces.UID) (*interfaces.Attestation, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getAttestation", [32]byte(attestationUID))
	if err != nil {
		return nil, fmt.Errorf("getAttestation call: %w", err)
	}

	record := *abi.ConvertType(out[0], new(contractAttestation)).(*contractAttestation)
	if record.Uid == ([32]byte{}) {
		return nil, interfaces.ErrAttestationNotFound
	}

	return &interfaces.Attestation{
		UID:            interfaces.UID(record.Uid),
		Schema:         interfaces.UID(record.Schema),
		Time:           record.Time,
		ExpirationTime: record.ExpirationTime,
		RevocationTime: record.RevocationTime,
		RefUID:         interfaces.UID(record.RefUID),
		Recipient:      record.Recipient,
		Attester:       record.Attester,
		Revocable:      record.Revocable,
		Data:           record.Data,
	}, nil
}

// IsAttestationValid reports whether an attestation exists under uid.
func (c *Client) IsAttestationValid(ctx context.Context, attestationUID interfaces.UID) (bool, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isAttestationValid", [32]byte(attestationUID))
	if err != nil {
		return false, fmt.Errorf("isAttestationValid call: %w", err)
	}

	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// PredictUID computes the UID the contract will assign to an attestation
// issued by attester at the given creation time with the given bump.
func (c *Client) PredictUID(req *AttestationRequest, schema string, attester common.Address, time uint64, bump uint32) interfaces.UID {
	return uid.DeriveAttestationUID(schema, req.Data.Recipient, attester, time, req.Data.ExpirationTime, req.Data.Revocable, req.Data.RefUID, req.Data.Data, bump)
}

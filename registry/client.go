// Package registry provides a client for the on-chain schema registry
// contract of the attestation protocol.
package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/attestprotocol/eas-go/interfaces"
	"github.com/attestprotocol/eas-go/uid"
)

// schemaRegistryABI is the subset of the deployed SchemaRegistry contract's
// interface consumed by this client.
const schemaRegistryABI = `[
{"inputs":[{"internalType":"string","name":"schema","type":"string"},{"internalType":"address","name":"resolver","type":"address"},{"internalType":"bool","name":"revocable","type":"bool"}],"name":"register","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"bytes32","name":"uid","type":"bytes32"}],"name":"getSchema","outputs":[{"components":[{"internalType":"bytes32","name":"uid","type":"bytes32"},{"internalType":"address","name":"resolver","type":"address"},{"internalType":"bool","name":"revocable","type":"bool"},{"internalType":"string","name":"schema","type":"string"}],"internalType":"struct SchemaRecord","name":"","type":"tuple"}],"stateMutability":"view","type":"function"}
]`

// schemaRecord mirrors the contract's SchemaRecord tuple layout.
type schemaRecord struct {
	Uid       [32]byte
	Resolver  common.Address
	Revocable bool
	Schema    string
}

// Client implements the interfaces.SchemaRegistry interface for interacting
// with a SchemaRegistry contract deployed on an Ethereum-compatible chain.
type Client struct {
	contract *bind.BoundContract
	address  common.Address
	auth     *bind.TransactOpts
}

var _ interfaces.SchemaRegistry = (*Client)(nil)

// NewClient creates a client attached to the registry contract at the
// specified address.
func NewClient(backend bind.ContractBackend, address common.Address) (*Client, error) {
	parsed, err := abi.JSON(strings.NewReader(schemaRegistryABI))
	if err != nil {
		return nil, fmt.Errorf("parse schema registry abi: %w", err)
	}

	return &Client{
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
		address:  address,
	}, nil
}

// Address returns the registry contract address the client is attached to.
func (c *Client) Address() common.Address {
	return c.address
}

// SetTransactOpts sets the transaction options required for functions that
// modify state. This must be called before using any methods that send
// transactions to the blockchain.
func (c *Client) SetTransactOpts(auth *bind.TransactOpts) {
	c.auth = auth
}

// Register submits a schema registration transaction. The UID the contract
// will assign is PredictUID(schema, resolver, revocable); callers may compute
// it before the transaction executes.
// Returns the transaction and an error if the transaction could not be sent.
func (c *Client) Register(schema string, resolver common.Address, revocable bool) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNoTransactOpts
	}

	return c.contract.Transact(c.auth, "register", schema, resolver, revocable)
}

// GetSchema retrieves a schema record by its UID. A record whose UID equals
// the zero sentinel is reported as interfaces.ErrSchemaNotFound, never
// returned as a valid record.
func (c *Client) GetSchema(ctx context.Context, schemaUID interfaces.UID) (*interfaces.SchemaRecord, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getSchema", [32]byte(schemaUID))
	if err != nil {
		return nil, fmt.Errorf("getSchema call: %w", err)
	}

	record := *abi.ConvertType(out[0], new(schemaRecord)).(*schemaRecord)
	if record.Uid == ([32]byte{}) {
		return nil, interfaces.ErrSchemaNotFound
	}

	return &interfaces.SchemaRecord{
		UID:       interfaces.UID(record.Uid),
		Resolver:  record.Resolver,
		Revocable: record.Revocable,
		Schema:    record.Schema,
	}, nil
}

// PredictUID computes the UID the registry will assign to a schema. The
// derivation matches the contract's bit-for-bit, so the value is valid both
// before and after registration.
func (c *Client) PredictUID(schema string, resolver common.Address, revocable bool) interfaces.UID {
	return uid.DeriveSchemaUID(schema, resolver, revocable)
}

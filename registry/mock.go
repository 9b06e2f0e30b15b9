package registry

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"

	"github.com/attestprotocol/eas-go/interfaces"
)

// MockRegistry mocks the interfaces.SchemaRegistry interface.
type MockRegistry struct {
	mock.Mock
}

// Register mocks the Register method.
func (m *MockRegistry) Register(schema string, resolver common.Address, revocable bool) (*types.Transaction, error) {
	args := m.Called(schema, resolver, revocable)
	tx, _ := args.Get(0).(*types.Transaction)
	return tx, args.Error(1)
}

// GetSchema mocks the GetSchema method.
func (m *MockRegistry) GetSchema(ctx context.Context, uid interfaces.UID) (*interfaces.SchemaRecord, error) {
	args := m.Called(ctx, uid)
	record, _ := args.Get(0).(*interfaces.SchemaRecord)
	return record, args.Error(1)
}

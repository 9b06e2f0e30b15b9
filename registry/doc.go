// Package registry provides a client for the on-chain SchemaRegistry
// contract.
//
// The client implements the interfaces.SchemaRegistry interface. Read-only
// operations work immediately after attaching to a deployed contract address;
// state-modifying operations require transaction options set via
// SetTransactOpts first.
//
// Schema UIDs are content-derived: PredictUID reproduces the exact identifier
// the contract will assign, so callers can pre-link a schema in the same flow
// that registers it.
//
// # Usage Example
//
//	client, err := registry.NewClient(ethClient, registryAddress)
//	if err != nil {
//	    log.Fatalf("Failed to create registry client: %v", err)
//	}
//
//	// Predict the UID before registering.
//	schemaUID := client.PredictUID("bool like", resolverAddr, true)
//
//	auth, _ := bind.NewKeyedTransactorWithChainID(privateKey, chainID)
//	client.SetTransactOpts(auth)
//	tx, err := client.Register("bool like", resolverAddr, true)
//
//	// After the transaction confirms, the record is readable under the
//	// predicted UID.
//	record, err := client.GetSchema(ctx, schemaUID)
package registry

// Package interfaces defines the shared value types, sentinel errors, and
// component interfaces of the attestation SDK.
//
// The package holds no logic beyond construction and validation helpers.
// Concrete behavior lives in the uid, eip712, registry, attest, and storage
// packages, which all depend on this one and never on each other's
// implementations.
package interfaces

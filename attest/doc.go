// Package attest provides the attestation-side clients of the SDK.
//
// Three cooperating pieces:
//
//   - Client wraps the deployed attestation contract: attest, revoke,
//     getAttestation, isAttestationValid. Reads map the contract's zero-UID
//     sentinel to interfaces.ErrAttestationNotFound.
//
//   - Delegated request builders produce EIP-712 envelopes for attestations
//     and revocations signed by the attester but submitted by a relayer. The
//     builders only assemble the typed data; signing and verification go
//     through an eip712.TypedDataHandler bound to the contract's domain.
//
//   - Offchain signs and verifies self-contained attestation envelopes that
//     never touch the chain. An off-chain attestation carries the same UID
//     its field tuple would receive on-chain, so it can be referenced, pinned
//     to off-chain storage, or later submitted without changing identity.
//
// All three are stateless per call; retry policy and nonce management belong
// to the caller.
package attest

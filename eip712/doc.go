// Package eip712 implements EIP-712 typed-data construction, signing, and
// signature verification for the attestation protocol's signing domains.
//
// A TypedDataHandler is bound to one immutable domain configuration: the
// verifying contract address, a protocol name and version, and a chain ID.
// From that tuple it derives the domain separator that pins every signature
// to exactly one (contract, chain, name, version) context, so a signature
// produced for one deployment cannot be replayed against another.
//
// The handler never touches key material. Signing is delegated to the
// Signer capability, a single-method interface any custody backend can
// satisfy:
//
//	type Signer interface {
//	    SignTypedData(ctx context.Context, data apitypes.TypedData) ([]byte, error)
//	}
//
// LocalSigner is the in-process implementation for callers that hold a raw
// secp256k1 key; the keystore package loads one from an encrypted key file.
//
// # Usage Example
//
//	handler := eip712.NewTypedDataHandler(eip712.TypedDataConfig{
//	    Address: contractAddr,
//	    Name:    "EAS Attestation",
//	    Version: "0.26",
//	    ChainID: big.NewInt(1),
//	})
//
//	resp, err := handler.SignTypedDataRequest(ctx, request, signer)
//	if err != nil {
//	    return err
//	}
//
//	ok, err := handler.VerifyTypedDataRequestSignature(attester, resp)
//
// Verification returns false for any mismatch or malformed input; the only
// error condition is a zero expected-signer address, which is a caller bug
// rather than a verification outcome.
package eip712

package attest

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestprotocol/eas-go/eip712"
	"github.com/attestprotocol/eas-go/interfaces"
	"github.com/attestprotocol/eas-go/uid"
)

// stubBackend satisfies bind.ContractBackend with canned call output, enough
// to drive the client's read path without a chain.
type stubBackend struct {
	output []byte
}

func (b *stubBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x01}, nil
}

func (b *stubBackend) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	return b.output, nil
}

func (b *stubBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return nil, errors.New("not implemented")
}

func (b *stubBackend) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (b *stubBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 0, errors.New("not implemented")
}

func (b *stubBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return nil, errors.New("not implemented")
}

func (b *stubBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return nil, errors.New("not implemented")
}

func (b *stubBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 0, errors.New("not implemented")
}

func (b *stubBackend) SendTransaction(context.Context, *types.Transaction) error {
	return errors.New("not implemented")
}

func (b *stubBackend) FilterLogs(context.Context, ethereum.FilterQuery) ([]types.Log, error) {
	return nil, errors.New("not implemented")
}

func (b *stubBackend) SubscribeFilterLogs(context.Context, ethereum.FilterQuery, chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("not implemented")
}

func parsedEASABI(t *testing.T) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(easABI))
	require.NoError(t, err)
	return parsed
}

// packAttestation ABI-encodes a getAttestation return value the way the
// contract would.
func packAttestation(t *testing.T, record contractAttestation) []byte {
	t.Helper()
	out, err := parsedEASABI(t).Methods["getAttestation"].Outputs.Pack(record)
	require.NoError(t, err)
	return out
}

func testAttestationRequest() *AttestationRequest {
	return &AttestationRequest{
		Schema: uid.DeriveSchemaUID("bool like", common.Address{}, true),
		Data: AttestationRequestData{
			Recipient: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
			Revocable: true,
			Data:      []byte{0x01},
		},
	}
}

func TestClient_RequiresTransactOpts(t *testing.T) {
	client, err := NewClient(nil, common.HexToAddress("0x01"))
	require.NoError(t, err)

	_, err = client.Attest(testAttestationRequest())
	assert.True(t, errors.Is(err, interfaces.ErrNoTransactOpts))

	_, err = client.Revoke(&RevocationRequest{})
	assert.True(t, errors.Is(err, interfaces.ErrNoTransactOpts))
}

func TestClient_PredictUID(t *testing.T) {
	client, err := NewClient(nil, common.HexToAddress("0x01"))
	require.NoError(t, err)

	req := testAttestationRequest()
	attester := common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")

	want := uid.DeriveAttestationUID("bool like", req.Data.Recipient, attester, 1669299342, 0, true, interfaces.UID{}, []byte{0x01}, 7)
	assert.Equal(t, want, client.PredictUID(req, "bool like", attester, 1669299342, 7))
}

// TestGetAttestation_NotFoundSentinel drives the real client against a
// backend returning the contract's zero-UID sentinel: the result must be
// ErrAttestationNotFound, never a zero-valued record.
func TestGetAttestation_NotFoundSentinel(t *testing.T) {
	backend := &stubBackend{output: packAttestation(t, contractAttestation{})}
	client, err := NewClient(backend, common.HexToAddress("0x01"))
	require.NoError(t, err)

	att, err := client.GetAttestation(context.Background(), interfaces.ZeroUID)
	assert.Nil(t, att)
	assert.True(t, errors.Is(err, interfaces.ErrAttestationNotFound))
}

func TestGetAttestation_RoundTrip(t *testing.T) {
	recipient := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	attester := common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	schemaUID := uid.DeriveSchemaUID("bool like", common.Address{}, true)
	attUID := uid.DeriveAttestationUID("bool like", recipient, attester, 1669299342, 0, true, interfaces.UID{}, []byte{0x01}, 0)

	backend := &stubBackend{output: packAttestation(t, contractAttestation{
		Uid:       attUID,
		Schema:    schemaUID,
		Time:      1669299342,
		Recipient: recipient,
		Attester:  attester,
		Revocable: true,
		Data:      []byte{0x01},
	})}
	client, err := NewClient(backend, common.HexToAddress("0x01"))
	require.NoError(t, err)

	att, err := client.GetAttestation(context.Background(), attUID)
	require.NoError(t, err)
	assert.Equal(t, &interfaces.Attestation{
		UID:       attUID,
		Schema:    schemaUID,
		Time:      1669299342,
		Recipient: recipient,
		Attester:  attester,
		Revocable: true,
		Data:      []byte{0x01},
	}, att)
}

func TestIsAttestationValid(t *testing.T) {
	valid, err := parsedEASABI(t).Methods["isAttestationValid"].Outputs.Pack(true)
	require.NoError(t, err)

	client, err := NewClient(&stubBackend{output: valid}, common.HexToAddress("0x01"))
	require.NoError(t, err)

	ok, err := client.IsAttestationValid(context.Background(), interfaces.ZeroUID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDelegatedAttestationRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := eip712.NewLocalSigner(key)

	handler := eip712.NewTypedDataHandler(eip712.TypedDataConfig{
		Address: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		Name:    "EAS Attestation",
		Version: "0.26",
		ChainID: big.NewInt(31337),
	})

	req := NewDelegatedAttestationRequest(testAttestationRequest(), big.NewInt(0))
	resp, err := handler.SignTypedDataRequest(context.Background(), req, signer)
	require.NoError(t, err)

	ok, err := handler.VerifyTypedDataRequestSignature(signer.Address(), resp)
	require.NoError(t, err)
	assert.True(t, ok)

	// A relayer replaying the signature under a different nonce must fail.
	resp.Message["nonce"] = "1"
	ok, err = handler.VerifyTypedDataRequestSignature(signer.Address(), resp)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelegatedRevocationRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := eip712.NewLocalSigner(key)

	handler := eip712.NewTypedDataHandler(eip712.TypedDataConfig{
		Address: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		Name:    "EAS Attestation",
		Version: "0.26",
		ChainID: big.NewInt(31337),
	})

	revocation := &RevocationRequest{
		Schema: uid.DeriveSchemaUID("bool like", common.Address{}, true),
		Data: RevocationRequestData{
			UID: uid.DeriveAttestationUID("bool like", common.Address{}, signer.Address(), 1669299342, 0, true, interfaces.UID{}, nil, 0),
		},
	}

	resp, err := handler.SignTypedDataRequest(context.Background(), NewDelegatedRevocationRequest(revocation, big.NewInt(3)), signer)
	require.NoError(t, err)

	ok, err := handler.VerifyTypedDataRequestSignature(signer.Address(), resp)
	require.NoError(t, err)
	assert.True(t, ok)
}

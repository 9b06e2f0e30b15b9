package keystore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	blob, err := Seal(key, []byte("correct horse"))
	require.NoError(t, err)

	recovered, err := Open(blob, []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, crypto.FromECDSA(key), crypto.FromECDSA(recovered))

	// Fresh salt and nonce per seal.
	blob2, err := Seal(key, []byte("correct horse"))
	require.NoError(t, err)
	assert.NotEqual(t, blob, blob2)
}

func TestOpen_WrongPassphrase(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	blob, err := Seal(key, []byte("correct horse"))
	require.NoError(t, err)

	_, err = Open(blob, []byte("battery staple"))
	assert.Error(t, err)
}

func TestOpen_TruncatedBlob(t *testing.T) {
	_, err := Open(make([]byte, 10), []byte("x"))
	assert.Error(t, err)
}

func TestLoadLocalSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	blob, err := Seal(key, []byte("pass"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "attester.key")
	require.NoError(t, os.WriteFile(path, blob, 0o600))

	signer, err := LoadLocalSigner(path, []byte("pass"))
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), signer.Address())

	// The loaded signer must actually sign.
	td := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": []apitypes.Type{{Name: "name", Type: "string"}},
			"Ping":         []apitypes.Type{{Name: "n", Type: "uint256"}},
		},
		PrimaryType: "Ping",
		Domain:      apitypes.TypedDataDomain{Name: "t"},
		Message:     apitypes.TypedDataMessage{"n": "1"},
	}
	sig, err := signer.SignTypedData(context.Background(), td)
	require.NoError(t, err)
	assert.Len(t, sig, 65)
}

// Package keystore seals attester signing keys to disk for the LocalSigner
// custody backend. Keys are encrypted with AES-256-GCM under an argon2id-
// derived key; the sealed blob is self-contained:
//
//	[salt (16 bytes)][nonce (12 bytes)][ciphertext]
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/argon2"

	"github.com/attestprotocol/eas-go/eip712"
)

const (
	saltSize  = 16
	nonceSize = 12 // standard for GCM
)

// Seal encrypts a secp256k1 private key under a passphrase. A fresh salt and
// nonce are drawn for every call, so sealing the same key twice yields
// different blobs.
func Seal(key *ecdsa.PrivateKey, passphrase []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	ciphertext := aesGCM.Seal(nil, nonce, crypto.FromECDSA(key), nil)

	blob := make([]byte, 0, saltSize+nonceSize+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// Open decrypts a blob produced by Seal. A wrong passphrase fails GCM
// authentication and returns an error.
func Open(blob, passphrase []byte) (*ecdsa.PrivateKey, error) {
	if len(blob) <= saltSize+nonceSize {
		return nil, errors.New("sealed key blob too short")
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	ciphertext := blob[saltSize+nonceSize:]

	aesGCM, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	keyBytes, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt key: %w", err)
	}

	key, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse decrypted key: %w", err)
	}

	return key, nil
}

// LoadLocalSigner reads a sealed key file and returns a signer over it.
func LoadLocalSigner(path string, passphrase []byte) (*eip712.LocalSigner, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key, err := Open(blob, passphrase)
	if err != nil {
		return nil, err
	}

	return eip712.NewLocalSigner(key), nil
}

func newGCM(passphrase, salt []byte) (cipher.AEAD, error) {
	derived := argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)

	aesBlock, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return cipher.NewGCM(aesBlock)
}

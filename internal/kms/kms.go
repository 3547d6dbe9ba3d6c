package kms

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	stderr "errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keyLength   = 32
	nonceLength = 24
)

// ErrInvalidKeyLength is returned when the secretbox key is not 32 bytes long
var ErrInvalidKeyLength = stderr.New("encryption key must be 32 bytes long")

// ErrDecrypt is returned when a ciphertext cannot be opened with the configured key
var ErrDecrypt = stderr.New("cannot decrypt secret")

// SecretBox encrypts secrets at rest with NaCl secretbox (XSalsa20 + Poly1305).
// The encoded form is base64(nonce || sealed).
type SecretBox struct {
	key [keyLength]byte
}

// NewSecretBox returns a SecretBox using key
func NewSecretBox(key []byte) (*SecretBox, error) {
	if len(key) != keyLength {
		return nil, ErrInvalidKeyLength
	}
	s := &SecretBox{}
	copy(s.key[:], key)
	return s, nil
}

// Encrypt seals plain with a random nonce
func (s *SecretBox) Encrypt(plain []byte) (string, error) {
	var nonce [nonceLength]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt
func (s *SecretBox) Decrypt(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	if len(raw) < nonceLength+secretbox.Overhead {
		return nil, ErrDecrypt
	}
	var nonce [nonceLength]byte
	copy(nonce[:], raw[:nonceLength])
	plain, ok := secretbox.Open(nil, raw[nonceLength:], &nonce, &s.key)
	if !ok {
		return nil, ErrDecrypt
	}
	return plain, nil
}

// AuthorizationKey is a P-256 keypair used as a wallet signer.
// PublicKey is base64(DER SubjectPublicKeyInfo) and PrivateKey is base64(DER PKCS8).
type AuthorizationKey struct {
	PublicKey  string
	PrivateKey string
}

// NewAuthorizationKey generates a new P-256 keypair
func NewAuthorizationKey() (*AuthorizationKey, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating P-256 keypair: %w", err)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("exporting private key: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("exporting public key: %w", err)
	}
	return &AuthorizationKey{
		PublicKey:  base64.StdEncoding.EncodeToString(pubDER),
		PrivateKey: base64.StdEncoding.EncodeToString(privDER),
	}, nil
}

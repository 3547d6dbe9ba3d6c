package kms

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, keyLength)
}

func TestSecretBox(t *testing.T) {
	box, err := NewSecretBox(testKey(1))
	require.NoError(t, err)

	secret := []byte("MIGHAgEAMBMGByqGSM49AgEGCCqGSM49AwEHBG0wawIBAQQg")
	encrypted, err := box.Encrypt(secret)
	require.NoError(t, err)
	assert.NotContains(t, encrypted, string(secret))

	again, err := box.Encrypt(secret)
	require.NoError(t, err)
	assert.NotEqual(t, encrypted, again, "nonce must be random")

	plain, err := box.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, secret, plain)
}

func TestSecretBox_Errors(t *testing.T) {
	_, err := NewSecretBox([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	box, err := NewSecretBox(testKey(1))
	require.NoError(t, err)
	other, err := NewSecretBox(testKey(2))
	require.NoError(t, err)

	encrypted, err := box.Encrypt([]byte("secret"))
	require.NoError(t, err)

	type testConfig struct {
		name    string
		box     *SecretBox
		payload string
	}
	for _, tc := range []testConfig{
		{name: "wrong key", box: other, payload: encrypted},
		{name: "not base64", box: box, payload: "%%%"},
		{name: "too short", box: box, payload: base64.StdEncoding.EncodeToString([]byte("abc"))},
		{name: "plain text value", box: box, payload: "MIGHAgEAMBMGByqGSM49AgEGCCqGSM49AwEHBG0wawIBAQQg"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.box.Decrypt(tc.payload)
			assert.ErrorIs(t, err, ErrDecrypt)
		})
	}
}

func TestNewAuthorizationKey(t *testing.T) {
	key, err := NewAuthorizationKey()
	require.NoError(t, err)

	pubDER, err := base64.StdEncoding.DecodeString(key.PublicKey)
	require.NoError(t, err)
	pub, err := x509.ParsePKIXPublicKey(pubDER)
	require.NoError(t, err)
	ecPub, ok := pub.(*ecdsa.PublicKey)
	require.True(t, ok)
	assert.Equal(t, elliptic.P256(), ecPub.Curve)

	privDER, err := base64.StdEncoding.DecodeString(key.PrivateKey)
	require.NoError(t, err)
	priv, err := x509.ParsePKCS8PrivateKey(privDER)
	require.NoError(t, err)
	ecPriv, ok := priv.(*ecdsa.PrivateKey)
	require.True(t, ok)
	assert.True(t, ecPriv.PublicKey.Equal(ecPub))
}

package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required size in bytes for both input keys (AES-256).
	KeySize = 32

	// hkdfInfo binds derived keys to this package's purpose so the same key
	// material cannot be reused for a different scheme.
	hkdfInfo = "sessionkit/secrets:v1"
)

// GenerateKey returns a cryptographically secure random 32-byte key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// EncryptBytes encrypts plaintext with a key derived from the app and install
// keys. The returned ciphertext is nonce-prefixed raw bytes.
func EncryptBytes(appKey, installKey, plaintext []byte) ([]byte, error) {
	gcm, err := newAEAD(appKey, installKey)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// DecryptBytes decrypts nonce-prefixed ciphertext produced by EncryptBytes.
// Returns ErrDecryptionFailed for tampered or foreign ciphertext.
func DecryptBytes(appKey, installKey, ciphertext []byte) ([]byte, error) {
	gcm, err := newAEAD(appKey, installKey)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, ErrInvalidCiphertext
	}

	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// EncryptString encrypts a string and returns base64url-encoded ciphertext.
func EncryptString(appKey, installKey []byte, plaintext string) (string, error) {
	ciphertext, err := EncryptBytes(appKey, installKey, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// DecryptString decrypts base64url-encoded ciphertext produced by EncryptString.
func DecryptString(appKey, installKey []byte, encoded string) (string, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	plaintext, err := DecryptBytes(appKey, installKey, ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// newAEAD validates both keys and builds an AES-256-GCM cipher from the
// HKDF-derived compound key.
func newAEAD(appKey, installKey []byte) (cipher.AEAD, error) {
	if len(appKey) != KeySize {
		return nil, ErrInvalidAppKey
	}
	if len(installKey) != KeySize {
		return nil, ErrInvalidInstallKey
	}

	derived := make([]byte, KeySize)
	kdf := hkdf.New(sha256.New, appKey, installKey, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, derived); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return gcm, nil
}

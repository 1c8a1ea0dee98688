package secrets

import "errors"

var (
	// ErrInvalidAppKey is returned when the application key is not 32 bytes.
	ErrInvalidAppKey = errors.New("application key must be exactly 32 bytes")
	// ErrInvalidInstallKey is returned when the install key is not 32 bytes.
	ErrInvalidInstallKey = errors.New("install key must be exactly 32 bytes")
	// ErrKeyDerivationFailed is returned when HKDF key derivation fails.
	ErrKeyDerivationFailed = errors.New("failed to derive encryption key")
	// ErrEncryptionFailed is returned when AES-GCM encryption fails.
	ErrEncryptionFailed = errors.New("failed to encrypt data")
	// ErrDecryptionFailed is returned when decryption fails, including tampered ciphertext.
	ErrDecryptionFailed = errors.New("failed to decrypt data")
	// ErrInvalidCiphertext is returned when the ciphertext format is invalid or corrupted.
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")
)

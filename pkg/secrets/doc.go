// Package secrets provides AES-256-GCM encryption with compound key
// derivation for secure local data storage.
//
// The package combines an application key and an install key using HKDF
// (HMAC-based key derivation) to produce the encryption key. The application
// key is a global secret shipped with the client build; the install key is
// generated per device installation. Neither key alone can decrypt stored
// data, so leaking a single key does not expose persisted secrets.
//
// Key generation:
//
//	appKey, err := secrets.GenerateKey()
//	installKey, err := secrets.GenerateKey()
//
// String encryption (most common):
//
//	ciphertext, err := secrets.EncryptString(appKey, installKey, "refresh-token-value")
//	plaintext, err := secrets.DecryptString(appKey, installKey, ciphertext)
//
// Encryption properties:
//   - AES-256-GCM provides both confidentiality and authenticity
//   - Each encryption uses a unique random nonce
//   - Tampering with ciphertext is detected during decryption
package secrets

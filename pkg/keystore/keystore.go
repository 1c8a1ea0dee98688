package keystore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/sessionkit/pkg/secrets"
)

// Store is a file-backed encrypted key-value store. Safe for concurrent use;
// the filesystem rename provides last-writer-wins semantics per key.
type Store struct {
	dir        string
	appKey     []byte
	installKey []byte
}

// New creates a store rooted at dir, creating the directory if needed.
// Both keys must be 32 bytes (see pkg/secrets).
func New(dir string, appKey, installKey []byte) (*Store, error) {
	if len(appKey) != secrets.KeySize {
		return nil, secrets.ErrInvalidAppKey
	}
	if len(installKey) != secrets.KeySize {
		return nil, secrets.ErrInvalidInstallKey
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Join(ErrWriteFailed, err)
	}

	return &Store{
		dir:        dir,
		appKey:     appKey,
		installKey: installKey,
	}, nil
}

// Set encrypts and durably persists value under key. The entry is flushed to
// disk before Set returns, so callers may rely on it surviving a restart.
func (s *Store) Set(ctx context.Context, key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sealed, err := secrets.EncryptBytes(s.appKey, s.installKey, []byte(value))
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// Get reads and decrypts the entry for key. Returns ErrNotFound when the
// entry does not exist and ErrReadFailed when it exists but cannot be
// decrypted (corruption, key mismatch).
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sealed, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", errors.Join(ErrReadFailed, err)
	}

	plaintext, err := secrets.DecryptBytes(s.appKey, s.installKey, sealed)
	if err != nil {
		return "", errors.Join(ErrReadFailed, err)
	}
	return string(plaintext), nil
}

// Delete removes the entry for key. Deleting a missing entry is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// path validates the key and maps it to a file path. Keys are restricted to
// a flat namespace so a crafted key cannot escape the store directory.
func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.dir, key+".bin"), nil
}

// Package keystore provides durable encrypted key-value storage backed by the
// local filesystem. It models the "encrypted device storage" a native client
// uses for long-lived credentials such as refresh tokens.
//
// Each entry is stored as one file whose contents are sealed with
// pkg/secrets (AES-256-GCM over an HKDF compound key). Writes are atomic:
// the value is written to a temporary file and renamed into place, so a
// crash mid-write never leaves a corrupt entry.
//
//	store, err := keystore.New(dir, appKey, installKey)
//	if err != nil { ... }
//
//	err = store.Set(ctx, "refreshToken", token)
//	value, err := store.Get(ctx, "refreshToken") // keystore.ErrNotFound when absent
//	err = store.Delete(ctx, "refreshToken")
package keystore

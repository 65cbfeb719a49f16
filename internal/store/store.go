// Package store provides the shared, path-keyed document store the game
// coordinates through. Documents are JSON values addressed by slash paths
// (teams/{id}, gameState/pinCode, ...). Writers are last-writer-wins and
// there is no cross-path atomicity; subscribers are notified on every
// change, including changes made by other clients.
package store

import (
	"context"
	"encoding/json"
)

// Store is the replicated document store contract.
type Store interface {
	// Get reads the document at path into out. The boolean reports
	// whether a document existed.
	Get(ctx context.Context, path string, out interface{}) (bool, error)
	// Set fully overwrites the document at path.
	Set(ctx context.Context, path string, value interface{}) error
	// Update merges the named fields into the object document at path,
	// creating it if absent. Unnamed fields are left untouched.
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	// Remove deletes the document at path and everything below it.
	Remove(ctx context.Context, path string) error
	// Push appends value under a fresh child key of path and returns
	// the new key.
	Push(ctx context.Context, path string, value interface{}) (string, error)
	// List returns the direct children of path keyed by child key.
	List(ctx context.Context, path string) (map[string]json.RawMessage, error)
	// Subscribe registers fn for changes at or below path. fn fires
	// once immediately, then on every subsequent change with the path
	// that changed. The returned func unsubscribes.
	Subscribe(path string, fn func(changed string)) func()
}

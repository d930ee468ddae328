// Package storage is the document store adapter. Backends implement KV, a
// namespaced key to JSON value store; Client layers collection semantics
// (ordered JSON arrays of documents with an "id" field) on top of it.
package storage

import "context"

// KV is a schemaless key-value store holding JSON documents.
//
// Get returns (nil, nil) when the key does not exist. Update runs fn with the
// current value (nil when absent) and stores what fn returns; backends run it
// atomically per key where they can. Returning a nil value from fn leaves the
// key untouched.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
}

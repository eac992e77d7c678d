// Package index maps product names and aliases to stored document
// identifiers and resolves free-form queries against that mapping.
package index

import "context"

// Entry maps an alias key (human product name, filename stem, or any other
// alias) to a document identifier. Multiple keys may map to the same
// identifier.
type Entry struct {
	Key        string `json:"key"`
	DocumentID string `json:"document_id"`
}

// Store is the name index. Snapshot returns entries in the store's natural
// order, which the resolver's first-match policy depends on. Put makes a
// key visible to subsequent snapshots; last write wins, and callers must
// ensure a single writer per key at a time.
type Store interface {
	Snapshot(ctx context.Context) ([]Entry, error)
	Put(ctx context.Context, key, documentID string) error
}

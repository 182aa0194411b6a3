// Package snapshot persists the per-URL scan snapshots that change
// detection compares against. Stores are append-only; readers only ever
// ask for the most recent snapshot of a URL.
package snapshot

import (
	"context"
	"errors"

	"github.com/meridianpay/sitescan/internal/model"
)

// ErrNotFound is returned by GetLatest when the URL has never been
// scanned before.
var ErrNotFound = errors.New("snapshot not found")

// Store is the narrow persistence interface the engine depends on.
type Store interface {
	// Put appends a snapshot. The store assigns an ID if the snapshot
	// has none.
	Put(ctx context.Context, snap *model.SiteSnapshot) error

	// GetLatest returns the most recent snapshot stored for the
	// normalized URL, or ErrNotFound.
	GetLatest(ctx context.Context, url string) (*model.SiteSnapshot, error)

	Close() error
}

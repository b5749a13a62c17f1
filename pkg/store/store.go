// Package store loads diagram sets by order ID.
//
// Orders are owned by the ordering system; this package only reads them.
// [FileStore] serves a directory of JSON documents (handy for the CLI and
// tests) and [MongoStore] reads the production orders collection. Both
// convert through [io.Convert], so they report the same warnings for the
// same data.
package store

import (
	"context"

	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/io"
)

// Store is a read-only source of diagram sets.
type Store interface {
	// Load returns the set for orderID. A missing order yields an error
	// with code ORDER_NOT_FOUND.
	Load(ctx context.Context, orderID string) (profile.DiagramSet, []io.Warning, error)
	// List returns the known order IDs in ascending order.
	List(ctx context.Context) ([]string, error)
	Close(ctx context.Context) error
}

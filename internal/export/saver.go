package export

import (
	"context"
)

// Saver persists an exported CSV document.
type Saver interface {
	// Save stores data under name and returns where it was written.
	Save(ctx context.Context, name string, data []byte) (location string, err error)

	// Destination names the backing store, e.g. "file" or "s3".
	Destination() string
}

// Package imagestore uploads and deletes complaint images in remote object
// storage. The production implementation is Cloudinary; the orchestrator only
// sees the Store interface.
package imagestore

import (
	"context"
	"fmt"
	"io"
)

// Upload is the stable handle returned by a successful store. URL is publicly
// fetchable for the lifetime of the record; StorageID is sufficient to delete
// the asset later.
type Upload struct {
	URL       string `json:"url"`
	StorageID string `json:"public_id"`
}

// Store is the contract the orchestrator consumes.
type Store interface {
	// Store uploads the image under folder/name and returns its handle.
	// Storing under an existing name overwrites the previous asset.
	Store(ctx context.Context, image io.Reader, folder, name string) (*Upload, error)
	// Delete removes the asset. Deleting an already-deleted id is a no-op,
	// not an error.
	Delete(ctx context.Context, storageID string) error
}

// UploadError wraps any transport or quota failure from the remote store. The
// orchestrator aborts before any state mutation when it sees one.
type UploadError struct {
	Name string // logical asset name being stored
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload %q failed: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

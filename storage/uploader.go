// Package storage holds the object-store abstraction behind team flag
// images. The engine writes small image blobs under the flags/ prefix and
// hands their public URLs to API responses; nothing else touches the store.
package storage

import (
	"context"
	"fmt"
	"io"
)

// UploadResult identifies a stored object: its key, the public URL it is
// served from, and the ETag the store reported for the written bytes.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader is the engine's view of the object store. Implementations
// must be safe for concurrent use; Upload with an existing key replaces the
// object.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	// GetPublicURL derives the serving URL for a key without touching the
	// store; an empty string means no URL can be formed.
	GetPublicURL(key string) string
}

// TeamFlagKey is the canonical object key for a team's flag image. One key
// per team: re-uploading a flag overwrites the old image in place.
func TeamFlagKey(teamID int, ext string) string {
	return fmt.Sprintf("flags/team_%d%s", teamID, ext)
}

package ports

import "context"

// AssetStore abstracts the external binary hosting service for images. Upload
// accepts the raw image payload (base64 / data URI) and returns a durable URL;
// Delete removes the asset identified by a previously returned URL.
type AssetStore interface {
	Upload(ctx context.Context, data string) (string, error)
	Delete(ctx context.Context, assetURL string) error
}

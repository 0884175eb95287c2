// Package assets implements the asset-store port against Cloudinary, the
// external hosting service for post and profile images.
package assets

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryStore uploads image payloads and deletes them by the public ID
// derived from their delivery URL.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore builds a store from a cloudinary:// credentials URL. The
// folder scopes all uploads from this deployment.
func NewCloudinaryStore(credentialsURL, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(credentialsURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

// Upload sends the raw payload (base64 / data URI) and returns the durable
// HTTPS delivery URL. The post stores only this URL, never the bytes.
func (s *CloudinaryStore) Upload(ctx context.Context, data string) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		PublicID: uuid.NewString(),
		Folder:   s.folder,
	})
	if err != nil {
		return "", fmt.Errorf("asset upload: %w", err)
	}
	return res.SecureURL, nil
}

// Delete removes the asset behind a previously returned URL. Callers treat
// failures as non-fatal cleanup errors.
func (s *CloudinaryStore) Delete(ctx context.Context, assetURL string) error {
	publicID := publicIDFromURL(assetURL)
	if publicID == "" {
		return fmt.Errorf("asset delete: cannot derive public id from %q", assetURL)
	}
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("asset delete: %w", err)
	}
	return nil
}

// publicIDFromURL recovers "<folder>/<id>" from a delivery URL of the form
// https://res.cloudinary.com/<cloud>/image/upload/<version>/<folder>/<id>.<ext>
func publicIDFromURL(assetURL string) string {
	parts := strings.Split(assetURL, "/upload/")
	if len(parts) != 2 {
		return ""
	}
	p := parts[1]
	// Drop the version segment when present (v1234567890/...).
	if i := strings.IndexByte(p, '/'); i > 0 && isVersion(p[:i]) {
		p = p[i+1:]
	}
	return strings.TrimSuffix(p, path.Ext(p))
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package helpers

import (
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// NewGCSClient builds a Cloud Storage client. With an empty credsPath the
// client falls back to application default credentials.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// PhotoStore uploads member profile photos to a public bucket.
type PhotoStore struct {
	Client *storage.Client
	Bucket string
}

func NewPhotoStore(client *storage.Client, bucket string) *PhotoStore {
	return &PhotoStore{Client: client, Bucket: bucket}
}

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Accepts reports whether contentType is an image type the store takes.
func (s *PhotoStore) Accepts(contentType string) bool {
	_, ok := photoExtensions[contentType]
	return ok
}

// Upload stores one photo under the member's handle and returns its public
// URL. Object names are random so a re-upload never serves a stale cached
// image.
func (s *PhotoStore) Upload(ctx context.Context, handle, contentType string, r io.Reader) (string, error) {
	ext, ok := photoExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
	object := path.Join("members", handle, uuid.NewString()+ext)

	wc := s.Client.Bucket(s.Bucket).Object(object).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // small files, skip chunking
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return PublicURL(s.Bucket, object), nil
}

// PublicURL builds the public URL for an object in a public-read bucket.
func PublicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}

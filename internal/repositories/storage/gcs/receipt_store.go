package gcs

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
)

const uploadTimeout = 2 * time.Minute

// ReceiptStore keeps receipt binaries in a single Cloud Storage bucket and
// hands back the public retrieval URL for each stored object.
type ReceiptStore struct {
	client *storage.Client
	bucket string
}

// NewReceiptStore creates a store bound to the given bucket. Credentials come
// from the ambient environment (application default credentials).
func NewReceiptStore(ctx context.Context, bucket string) (*ReceiptStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("receipt bucket name cannot be empty")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &ReceiptStore{client: client, bucket: bucket}, nil
}

var _ portsrepo.ReceiptObjectStore = (*ReceiptStore)(nil)

// Put uploads the object and returns its public URL.
func (s *ReceiptStore) Put(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	wc := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to write object %s: %w", objectName, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName), nil
}

// Delete removes the object. Deleting a missing object is not an error.
func (s *ReceiptStore) Delete(ctx context.Context, objectName string) error {
	err := s.client.Bucket(s.bucket).Object(objectName).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectName, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *ReceiptStore) Close() error {
	return s.client.Close()
}

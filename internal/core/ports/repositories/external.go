package repositories

import (
	"context"
	"io"
)

// ContentGenerator abstracts the hosted generative model behind a single
// prompt-in, text-out call. The suggestion service owns prompt construction
// and output parsing.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ReceiptObjectStore abstracts receipt blob storage. Put returns the public
// retrieval URL for the stored object; only that URL is persisted on the
// transaction document.
type ReceiptObjectStore interface {
	Put(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, objectName string) error
}

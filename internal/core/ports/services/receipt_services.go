package services

import (
	"context"
	"io"
)

// ReceiptSvcFacade stores receipt binaries and keeps the transaction's
// receiptUrl in sync through the mutation gateway.
type ReceiptSvcFacade interface {
	// AttachReceipt uploads the object under a path keyed by transaction id
	// and original filename, then writes the retrieval URL on the document.
	AttachReceipt(ctx context.Context, txnID, filename, contentType string, r io.Reader) (string, error)
	// RemoveReceipt clears only receiptUrl; the derived status demotes on
	// its own. Object deletion is best effort.
	RemoveReceipt(ctx context.Context, txnID string) error
}

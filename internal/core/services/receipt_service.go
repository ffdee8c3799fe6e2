package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/ramplink/ramp_link_app/internal/apperrors"
	"github.com/ramplink/ramp_link_app/internal/core/domain"
	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
	portssvc "github.com/ramplink/ramp_link_app/internal/core/ports/services"
	"github.com/ramplink/ramp_link_app/internal/utils"
)

const publicStorageURLPrefix = "https://storage.googleapis.com/"

// receiptService coordinates the blob store and the mutation gateway:
// upload first, then write the URL, so the document never points at an
// object that does not exist.
type receiptService struct {
	store        portsrepo.ReceiptObjectStore
	transactions portssvc.TransactionSvcFacade
	logger       *slog.Logger
}

// NewReceiptService creates the receipt service.
func NewReceiptService(store portsrepo.ReceiptObjectStore, transactions portssvc.TransactionSvcFacade, logger *slog.Logger) portssvc.ReceiptSvcFacade {
	return &receiptService{store: store, transactions: transactions, logger: logger}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

func (s *receiptService) AttachReceipt(ctx context.Context, txnID, filename, contentType string, r io.Reader) (string, error) {
	if txnID == "" {
		return "", fmt.Errorf("%w: transaction id is required", apperrors.ErrValidation)
	}
	if s.store == nil {
		return "", fmt.Errorf("%w: receipt storage is not configured", apperrors.ErrValidation)
	}

	if _, err := s.transactions.GetTransaction(ctx, txnID); err != nil {
		return "", err
	}

	objectName, err := buildReceiptObjectName(txnID, filename)
	if err != nil {
		return "", err
	}

	url, err := s.store.Put(ctx, objectName, contentType, r)
	if err != nil {
		return "", fmt.Errorf("failed to store receipt for transaction %s: %w", txnID, err)
	}

	patch := domain.TransactionPatch{ReceiptURL: domain.NewOptionalString(url)}
	if _, err := s.transactions.UpdateTransaction(ctx, txnID, patch); err != nil {
		// The document was never updated, so the uploaded object is orphaned.
		if delErr := s.store.Delete(ctx, objectName); delErr != nil {
			s.logger.Warn("Failed to delete orphaned receipt object",
				slog.String("object", objectName), slog.String("error", delErr.Error()))
		}
		return "", fmt.Errorf("failed to record receipt url on transaction %s: %w", txnID, err)
	}

	return url, nil
}

// RemoveReceipt clears receiptUrl on the transaction. Removing the stored
// object afterwards is best effort: a dangling blob is harmless, a dangling
// URL is not.
func (s *receiptService) RemoveReceipt(ctx context.Context, txnID string) error {
	if txnID == "" {
		return fmt.Errorf("%w: transaction id is required", apperrors.ErrValidation)
	}

	txn, err := s.transactions.GetTransaction(ctx, txnID)
	if err != nil {
		return err
	}
	if !txn.HasReceipt() {
		// Nothing attached; removing nothing succeeds.
		return nil
	}
	oldURL := *txn.ReceiptURL

	patch := domain.TransactionPatch{ReceiptURL: domain.NullOptionalString()}
	if _, err := s.transactions.UpdateTransaction(ctx, txnID, patch); err != nil {
		return fmt.Errorf("failed to clear receipt url on transaction %s: %w", txnID, err)
	}

	if s.store != nil {
		if objectName, ok := objectNameFromURL(oldURL); ok {
			if err := s.store.Delete(ctx, objectName); err != nil {
				s.logger.Warn("Failed to delete receipt object",
					slog.String("object", objectName), slog.String("error", err.Error()))
			}
		}
	}
	return nil
}

// buildReceiptObjectName keys objects by transaction and a random prefix so
// re-uploads of the same filename never collide.
func buildReceiptObjectName(txnID, filename string) (string, error) {
	random, err := utils.GenerateSecureRandomString(8)
	if err != nil {
		return "", fmt.Errorf("failed to generate receipt object name: %w", err)
	}
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "receipt"
	}
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("receipts/%s/%s_%s", txnID, random, base), nil
}

// objectNameFromURL recovers "<bucket-relative object path>" from a public
// storage URL. Unknown URL shapes are left alone.
func objectNameFromURL(url string) (string, bool) {
	rest, ok := strings.CutPrefix(url, publicStorageURLPrefix)
	if !ok {
		return "", false
	}
	// rest is "<bucket>/<object>"; the store is already bound to its bucket.
	_, object, found := strings.Cut(rest, "/")
	if !found || object == "" {
		return "", false
	}
	return object, true
}

package domain_test

import (
	"testing"

	"github.com/ramplink/ramp_link_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Status(t *testing.T) {
	tests := []struct {
		name string
		txn  domain.Transaction
		want domain.TransactionStatus
	}{
		{
			name: "nothing assigned",
			txn:  domain.Transaction{},
			want: domain.StatusNeedsInfo,
		},
		{
			name: "only accounting code assigned",
			txn: domain.Transaction{
				CodedFields: domain.CodedFields{AccountingCode: stringPtr("7210 - Software & Subscriptions")},
			},
			want: domain.StatusNeedsInfo,
		},
		{
			name: "only receipt attached",
			txn: domain.Transaction{
				ReceiptURL: stringPtr("https://x/y.png"),
			},
			want: domain.StatusNeedsInfo,
		},
		{
			name: "code and receipt present",
			txn: domain.Transaction{
				ReceiptURL:  stringPtr("https://x/y.png"),
				CodedFields: domain.CodedFields{AccountingCode: stringPtr("7210 - Software & Subscriptions")},
			},
			want: domain.StatusPendingSync,
		},
		{
			name: "synced wins regardless of other fields",
			txn: domain.Transaction{
				SyncedToRamp: true,
			},
			want: domain.StatusComplete,
		},
		{
			name: "synced with code and receipt",
			txn: domain.Transaction{
				SyncedToRamp: true,
				ReceiptURL:   stringPtr("https://x/y.png"),
				CodedFields:  domain.CodedFields{AccountingCode: stringPtr("6450 - Meals & Entertainment")},
			},
			want: domain.StatusComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.txn.Status())
		})
	}
}

// Walks one transaction through the full review lifecycle: nothing assigned,
// then coded and evidenced, then picked up by the external sync.
func TestTransaction_StatusLifecycle(t *testing.T) {
	txn := domain.Transaction{TxnID: "txn_1"}
	assert.Equal(t, domain.StatusNeedsInfo, txn.Status())

	txn.CodedFields.AccountingCode = stringPtr("7210 - Software & Subscriptions")
	txn.ReceiptURL = stringPtr("https://x/y.png")
	assert.Equal(t, domain.StatusPendingSync, txn.Status())

	txn.SyncedToRamp = true
	assert.Equal(t, domain.StatusComplete, txn.Status())

	// Removing the receipt after sync does not demote the transaction.
	txn.ReceiptURL = nil
	assert.Equal(t, domain.StatusComplete, txn.Status())
}

func TestTransaction_HasReceipt(t *testing.T) {
	assert.False(t, domain.Transaction{}.HasReceipt())
	assert.True(t, domain.Transaction{ReceiptURL: stringPtr("https://x/y.png")}.HasReceipt())
}

func TestSortTransactions(t *testing.T) {
	txns := []domain.Transaction{
		{TxnID: "b", Date: "2025-07-01T00:00:00Z"},
		{TxnID: "a", Date: "2025-07-01T00:00:00Z"},
		{TxnID: "c", Date: "2025-08-15T12:30:00Z"},
		{TxnID: "d", Date: ""},
	}

	domain.SortTransactions(txns)

	ids := []string{txns[0].TxnID, txns[1].TxnID, txns[2].TxnID, txns[3].TxnID}
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids)
}

func stringPtr(s string) *string {
	return &s
}

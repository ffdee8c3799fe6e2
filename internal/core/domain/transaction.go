package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the workflow state of a transaction. It is derived
// from other fields on every read and is never persisted or set directly.
type TransactionStatus string

const (
	StatusComplete    TransactionStatus = "Complete"
	StatusPendingSync TransactionStatus = "Pending Sync"
	StatusNeedsInfo   TransactionStatus = "Needs Info"
)

// CodedFields holds the user-assigned accounting metadata for a transaction.
// A nil field means the value has not been assigned yet.
type CodedFields struct {
	AccountingCode *string `json:"accountingCode"`
	Memo           *string `json:"memo"`
	JobName        *string `json:"jobName"`
	JobPhase       *string `json:"jobPhase"`
	JobCategory    *string `json:"jobCategory"`
}

// Transaction represents one expense event synced from the expense provider.
type Transaction struct {
	TxnID        string          `json:"txnID"`  // Primary Key (provider document id)
	Vendor       string          `json:"vendor"` // Defaults to "Unknown Vendor" when missing upstream
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"` // RFC 3339 after normalization
	ReceiptURL   *string         `json:"receiptUrl"`
	CodedFields  CodedFields     `json:"codedFields"`
	SyncedToRamp bool            `json:"syncedToRamp"` // Written only by the external sync job
}

// Status derives the workflow state from the sync flag, the assigned
// accounting code and the receipt. Synced wins, then code+receipt together
// mean the transaction is waiting on the external sync, anything else still
// needs information from the reviewer.
func (t Transaction) Status() TransactionStatus {
	if t.SyncedToRamp {
		return StatusComplete
	}
	if t.CodedFields.AccountingCode != nil && t.HasReceipt() {
		return StatusPendingSync
	}
	return StatusNeedsInfo
}

// HasReceipt reports whether a receipt is attached.
func (t Transaction) HasReceipt() bool {
	return t.ReceiptURL != nil
}

// SortTransactions orders a snapshot newest first. Dates are normalized RFC
// 3339 strings, so lexicographic comparison matches chronological order; the
// id breaks ties so ordering is stable across refreshes.
func SortTransactions(txns []Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if txns[i].Date != txns[j].Date {
			return txns[i].Date > txns[j].Date
		}
		return txns[i].TxnID < txns[j].TxnID
	})
}

package models

import "github.com/shopspring/decimal"

// Transaction is the database row shape for one expense event. The external
// sync job owns row creation and the synced flag; this system only reads rows
// and patches the review fields. Nullable columns stay pointers here and are
// defaulted during mapping so the projection is always renderable.
type Transaction struct {
	TxnID          string           `json:"txnID"`
	Vendor         *string          `json:"vendor"`
	Description    *string          `json:"description"`
	Amount         *decimal.Decimal `json:"amount"`
	Date           *string          `json:"date"` // ISO-8601 or epoch millis, as the sync job wrote it
	ReceiptURL     *string          `json:"receiptUrl"`
	AccountingCode *string          `json:"accountingCode"`
	Memo           *string          `json:"memo"`
	JobName        *string          `json:"jobName"`
	JobPhase       *string          `json:"jobPhase"`
	JobCategory    *string          `json:"jobCategory"`
	SyncedToRamp   bool             `json:"syncedToRamp"`
}

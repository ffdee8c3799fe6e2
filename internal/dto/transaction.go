package dto

import (
	"github.com/ramplink/ramp_link_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CodedFieldsPatchRequest carries the user-editable accounting metadata of a
// partial update. Each field is tri-state: absent keys leave the stored value
// alone, explicit nulls clear it.
type CodedFieldsPatchRequest struct {
	AccountingCode domain.OptionalString `json:"accountingCode"`
	Memo           domain.OptionalString `json:"memo"`
	JobName        domain.OptionalString `json:"jobName"`
	JobPhase       domain.OptionalString `json:"jobPhase"`
	JobCategory    domain.OptionalString `json:"jobCategory"`
}

// UpdateTransactionRequest defines the fields accepted by the transaction
// patch endpoint. Everything else on a transaction belongs to the external
// sync job and is rejected by omission.
type UpdateTransactionRequest struct {
	ReceiptURL  domain.OptionalString    `json:"receiptUrl"`
	CodedFields *CodedFieldsPatchRequest `json:"codedFields"`
}

// ToDomainPatch converts the request into the patch the mutation gateway
// accepts.
func (r UpdateTransactionRequest) ToDomainPatch() domain.TransactionPatch {
	patch := domain.TransactionPatch{ReceiptURL: r.ReceiptURL}
	if r.CodedFields != nil {
		patch.CodedFields = domain.CodedFieldsPatch{
			AccountingCode: r.CodedFields.AccountingCode,
			Memo:           r.CodedFields.Memo,
			JobName:        r.CodedFields.JobName,
			JobPhase:       r.CodedFields.JobPhase,
			JobCategory:    r.CodedFields.JobCategory,
		}
	}
	return patch
}

// CodedFieldsResponse mirrors domain.CodedFields.
type CodedFieldsResponse struct {
	AccountingCode *string `json:"accountingCode"`
	Memo           *string `json:"memo"`
	JobName        *string `json:"jobName"`
	JobPhase       *string `json:"jobPhase"`
	JobCategory    *string `json:"jobCategory"`
}

// TransactionResponse defines the data returned for a transaction. Status is
// derived on every read, never stored.
type TransactionResponse struct {
	TxnID        string                   `json:"txnID"`
	Vendor       string                   `json:"vendor"`
	Description  string                   `json:"description"`
	Amount       decimal.Decimal          `json:"amount"`
	Date         string                   `json:"date"`
	ReceiptURL   *string                  `json:"receiptUrl"`
	CodedFields  CodedFieldsResponse      `json:"codedFields"`
	SyncedToRamp bool                     `json:"syncedToRamp"`
	Status       domain.TransactionStatus `json:"status"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TxnID:       txn.TxnID,
		Vendor:      txn.Vendor,
		Description: txn.Description,
		Amount:      txn.Amount,
		Date:        txn.Date,
		ReceiptURL:  txn.ReceiptURL,
		CodedFields: CodedFieldsResponse{
			AccountingCode: txn.CodedFields.AccountingCode,
			Memo:           txn.CodedFields.Memo,
			JobName:        txn.CodedFields.JobName,
			JobPhase:       txn.CodedFields.JobPhase,
			JobCategory:    txn.CodedFields.JobCategory,
		},
		SyncedToRamp: txn.SyncedToRamp,
		Status:       txn.Status(),
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to a slice of TransactionResponse DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsResponse wraps the current projection snapshot.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Loading      bool                  `json:"loading"`
}

// UpdateTransactionResponse wraps the post-update transaction state.
type UpdateTransactionResponse struct {
	ActionResult
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// AttachReceiptResponse returns the stored receipt URL.
type AttachReceiptResponse struct {
	ActionResult
	ReceiptURL string `json:"receiptUrl,omitempty"`
}

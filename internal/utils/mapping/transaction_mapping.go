package mapping

import (
	"strconv"
	"strings"
	"time"

	"github.com/ramplink/ramp_link_app/internal/core/domain"
	"github.com/ramplink/ramp_link_app/internal/models"
	"github.com/shopspring/decimal"
)

// fallbackVendor is shown when the sync job wrote no vendor on the document.
const fallbackVendor = "Unknown Vendor"

// ToDomainTransaction converts a database row to the canonical domain shape.
// Missing fields are defaulted rather than rejected so the projection always
// renders, and empty strings on nullable fields are treated as unassigned.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	amount := decimal.Zero
	if m.Amount != nil {
		amount = *m.Amount
	}

	vendor := strPtrOrDefault(m.Vendor, fallbackVendor)

	date := ""
	if m.Date != nil {
		date = NormalizeDate(*m.Date)
	}

	return domain.Transaction{
		TxnID:       m.TxnID,
		Vendor:      vendor,
		Description: strPtrOrDefault(m.Description, ""),
		Amount:      amount,
		Date:        date,
		ReceiptURL:  nonEmpty(m.ReceiptURL),
		CodedFields: domain.CodedFields{
			AccountingCode: nonEmpty(m.AccountingCode),
			Memo:           nonEmpty(m.Memo),
			JobName:        nonEmpty(m.JobName),
			JobPhase:       nonEmpty(m.JobPhase),
			JobCategory:    nonEmpty(m.JobCategory),
		},
		SyncedToRamp: m.SyncedToRamp,
	}
}

// ToDomainTransactionSlice converts a slice of rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// NormalizeDate folds the two upstream date encodings (ISO-8601 string or a
// unix epoch timestamp) into one RFC 3339 string. Unparseable input passes
// through verbatim so a bad document cannot break the projection.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Epoch timestamps arrive as a bare integer; above 1e12 it is millis.
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > 1_000_000_000_000 {
			return time.UnixMilli(n).UTC().Format(time.RFC3339)
		}
		return time.Unix(n, 0).UTC().Format(time.RFC3339)
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return s
}

func strPtrOrDefault(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

// nonEmpty collapses NULL and empty string to nil, matching how the upstream
// documents use both interchangeably for "not assigned".
func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

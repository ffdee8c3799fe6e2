package domain

import "encoding/json"

// OptionalString carries the tri-state a partial update needs: a JSON key can
// be absent (leave the field alone), explicitly null (clear the field) or a
// string (set the field). Set reports presence, Valid reports non-null.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

// NewOptionalString returns a present, non-null value.
func NewOptionalString(v string) OptionalString {
	return OptionalString{Set: true, Valid: true, Value: v}
}

// NullOptionalString returns a present, explicitly null value.
func NullOptionalString() OptionalString {
	return OptionalString{Set: true}
}

// UnmarshalJSON is only invoked for keys present in the payload, so Set is
// always true here. Anything other than null or a string is rejected.
func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr renders the value in the nullable-pointer form the rest of the domain
// uses. Absent and null both come back nil.
func (o OptionalString) Ptr() *string {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// CodedFieldsPatch is a partial update of the coded fields. Only keys with
// Set=true are written.
type CodedFieldsPatch struct {
	AccountingCode OptionalString `json:"accountingCode"`
	Memo           OptionalString `json:"memo"`
	JobName        OptionalString `json:"jobName"`
	JobPhase       OptionalString `json:"jobPhase"`
	JobCategory    OptionalString `json:"jobCategory"`
}

// IsEmpty reports whether the patch would write nothing.
func (p CodedFieldsPatch) IsEmpty() bool {
	return !p.AccountingCode.Set && !p.Memo.Set && !p.JobName.Set && !p.JobPhase.Set && !p.JobCategory.Set
}

// TransactionPatch is the full write set accepted by the mutation gateway.
// Everything else on a transaction belongs to the external sync job and is
// not patchable from this system.
type TransactionPatch struct {
	ReceiptURL  OptionalString   `json:"receiptUrl"`
	CodedFields CodedFieldsPatch `json:"codedFields"`
}

// IsEmpty reports whether the patch would write nothing.
func (p TransactionPatch) IsEmpty() bool {
	return !p.ReceiptURL.Set && p.CodedFields.IsEmpty()
}

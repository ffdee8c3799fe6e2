package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/ramplink/ramp_link_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantSet   bool
		wantValid bool
		wantValue string
		wantErr   bool
	}{
		{name: "absent key", payload: `{}`, wantSet: false},
		{name: "explicit null", payload: `{"memo":null}`, wantSet: true, wantValid: false},
		{name: "string value", payload: `{"memo":"lunch"}`, wantSet: true, wantValid: true, wantValue: "lunch"},
		{name: "empty string is a value", payload: `{"memo":""}`, wantSet: true, wantValid: true, wantValue: ""},
		{name: "number rejected", payload: `{"memo":42}`, wantErr: true},
		{name: "object rejected", payload: `{"memo":{}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target struct {
				Memo domain.OptionalString `json:"memo"`
			}
			err := json.Unmarshal([]byte(tt.payload), &target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, target.Memo.Set)
			assert.Equal(t, tt.wantValid, target.Memo.Valid)
			assert.Equal(t, tt.wantValue, target.Memo.Value)
		})
	}
}

func TestOptionalString_Ptr(t *testing.T) {
	assert.Nil(t, domain.OptionalString{}.Ptr())
	assert.Nil(t, domain.NullOptionalString().Ptr())

	p := domain.NewOptionalString("x").Ptr()
	require.NotNil(t, p)
	assert.Equal(t, "x", *p)
}

func TestTransactionPatch_IsEmpty(t *testing.T) {
	assert.True(t, domain.TransactionPatch{}.IsEmpty())

	withReceipt := domain.TransactionPatch{ReceiptURL: domain.NullOptionalString()}
	assert.False(t, withReceipt.IsEmpty())

	withMemo := domain.TransactionPatch{
		CodedFields: domain.CodedFieldsPatch{Memo: domain.NewOptionalString("x")},
	}
	assert.False(t, withMemo.IsEmpty())
}

func TestReferenceCascadeFilters(t *testing.T) {
	fields := domain.DefaultAccountingFields()

	phases := domain.PhasesForJob(fields, "Project Titan")
	assert.Equal(t, []string{"Development", "Infrastructure"}, phases)

	categories := domain.CategoriesForJobPhase(fields, "Project Titan", "Development")
	assert.Equal(t, []string{"CI/CD", "Software"}, categories)

	assert.Empty(t, domain.PhasesForJob(fields, "No Such Job"))
	assert.Empty(t, domain.CategoriesForJobPhase(fields, "Project Titan", "Sales"))
}

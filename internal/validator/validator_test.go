package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

func defaultEngine() *Engine {
	return NewEngine(NewDefaultRegistry())
}

func TestValidateRecordFullRecordIsValid(t *testing.T) {
	report := defaultEngine().ValidateRecord(domain.ParcelRecord{
		Unit: "604", Name: "Jane Doe", Supplier: "UPS", ParcelType: "BROWN BOX",
	})
	assert.Equal(t, StatusValid, report.Status)
	for _, res := range report.Results {
		assert.True(t, res.Passed, "rule %s field %s", res.RuleKey, res.Field)
	}
}

func TestValidateRecordUnknownUnitIsInvalid(t *testing.T) {
	report := defaultEngine().ValidateRecord(domain.ParcelRecord{
		Unit: domain.UnknownValue, Name: "Jane Doe", Supplier: "UPS", ParcelType: "BROWN BOX",
	})
	assert.Equal(t, StatusInvalid, report.Status)
	assert.True(t, report.Failed(RuleUnitRecognized))
}

func TestValidateRecordOtherSupplierIsWarning(t *testing.T) {
	report := defaultEngine().ValidateRecord(domain.ParcelRecord{
		Unit: "604", Name: "Jane Doe", Supplier: domain.SupplierOther, ParcelType: "BROWN BOX",
	})
	assert.Equal(t, StatusWarning, report.Status)
	assert.True(t, report.Failed(RuleSupplierListed))
	assert.False(t, report.Failed(RuleUnitRecognized))
}

func TestValidateRecordUnknownSupplierIsForeignSentinel(t *testing.T) {
	// Supplier misses resolve to OTHER; UNKNOWN in that field means the
	// sentinels were swapped somewhere upstream.
	report := defaultEngine().ValidateRecord(domain.ParcelRecord{
		Unit: "604", Name: "Jane Doe", Supplier: domain.UnknownValue, ParcelType: "BROWN BOX",
	})
	assert.Equal(t, StatusInvalid, report.Status)
	assert.True(t, report.Failed(RuleSentinelDomain))
}

func TestValidateRecordEmptyFieldIsInvalid(t *testing.T) {
	report := defaultEngine().ValidateRecord(domain.ParcelRecord{
		Unit: "604", Name: "Jane Doe", Supplier: "UPS",
	})
	assert.Equal(t, StatusInvalid, report.Status)
	assert.True(t, report.Failed(RuleFieldsPresent))
}

func TestValidateRecordUnknownNameIsWarningOnly(t *testing.T) {
	report := defaultEngine().ValidateRecord(domain.ParcelRecord{
		Unit: "604", Name: domain.UnknownValue, Supplier: "UPS", ParcelType: "BROWN BOX",
	})
	assert.Equal(t, StatusWarning, report.Status)
	assert.True(t, report.Failed(RuleNameRecognized))
}

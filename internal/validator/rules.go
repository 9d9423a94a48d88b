package validator

import (
	"fmt"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// Built-in rule keys.
const (
	RuleFieldsPresent  = "fields_present"
	RuleSentinelDomain = "sentinel_domain"
	RuleUnitRecognized = "unit_recognized"
	RuleNameRecognized = "name_recognized"
	RuleSupplierListed = "supplier_listed"
)

// fieldsPresentRule checks that normalization left no field empty. A failure
// here means a record bypassed the normalizer.
type fieldsPresentRule struct{}

func (fieldsPresentRule) Key() string        { return RuleFieldsPresent }
func (fieldsPresentRule) Severity() Severity { return SeverityError }

func (r fieldsPresentRule) Validate(record domain.ParcelRecord) []Result {
	fields := map[string]string{
		"unit":        record.Unit,
		"name":        record.Name,
		"supplier":    record.Supplier,
		"parcel_type": record.ParcelType,
	}
	var out []Result
	for _, field := range []string{"unit", "name", "supplier", "parcel_type"} {
		res := Result{RuleKey: r.Key(), Severity: r.Severity(), Field: field, Passed: fields[field] != ""}
		if !res.Passed {
			res.Message = fmt.Sprintf("%s is empty", field)
		}
		out = append(out, res)
	}
	return out
}

// sentinelDomainRule checks that each field carries only its own sentinel:
// supplier misses are OTHER, never UNKNOWN, and unit/name misses are
// UNKNOWN, never OTHER.
type sentinelDomainRule struct{}

func (sentinelDomainRule) Key() string        { return RuleSentinelDomain }
func (sentinelDomainRule) Severity() Severity { return SeverityError }

func (r sentinelDomainRule) Validate(record domain.ParcelRecord) []Result {
	out := []Result{
		{RuleKey: r.Key(), Severity: r.Severity(), Field: "supplier", Passed: record.Supplier != domain.UnknownValue},
		{RuleKey: r.Key(), Severity: r.Severity(), Field: "unit", Passed: record.Unit != domain.SupplierOther},
		{RuleKey: r.Key(), Severity: r.Severity(), Field: "name", Passed: record.Name != domain.SupplierOther},
	}
	for i := range out {
		if !out[i].Passed {
			out[i].Message = fmt.Sprintf("%s holds a foreign sentinel", out[i].Field)
		}
	}
	return out
}

// unitRecognizedRule fails when no unit could be extracted. The parcel then
// needs manual entry instead of a valet hand-off.
type unitRecognizedRule struct{}

func (unitRecognizedRule) Key() string        { return RuleUnitRecognized }
func (unitRecognizedRule) Severity() Severity { return SeverityError }

func (r unitRecognizedRule) Validate(record domain.ParcelRecord) []Result {
	res := Result{RuleKey: r.Key(), Severity: r.Severity(), Field: "unit", Passed: record.Unit != domain.UnknownValue}
	if !res.Passed {
		res.Message = "unit not recognized"
	}
	return []Result{res}
}

// nameRecognizedRule flags records without a resident name. The hand-off can
// still proceed on unit alone.
type nameRecognizedRule struct{}

func (nameRecognizedRule) Key() string        { return RuleNameRecognized }
func (nameRecognizedRule) Severity() Severity { return SeverityWarning }

func (r nameRecognizedRule) Validate(record domain.ParcelRecord) []Result {
	res := Result{RuleKey: r.Key(), Severity: r.Severity(), Field: "name", Passed: record.Name != domain.UnknownValue}
	if !res.Passed {
		res.Message = "name not recognized"
	}
	return []Result{res}
}

// supplierListedRule flags suppliers that resolved to OTHER.
type supplierListedRule struct{}

func (supplierListedRule) Key() string        { return RuleSupplierListed }
func (supplierListedRule) Severity() Severity { return SeverityWarning }

func (r supplierListedRule) Validate(record domain.ParcelRecord) []Result {
	res := Result{RuleKey: r.Key(), Severity: r.Severity(), Field: "supplier", Passed: record.Supplier != domain.SupplierOther}
	if !res.Passed {
		res.Message = "supplier not on the known carrier list"
	}
	return []Result{res}
}

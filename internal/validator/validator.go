// Package validator checks extracted parcel records against the invariants
// the rest of the pipeline relies on, one Rule per invariant.
package validator

import (
	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// Severity classifies a failed rule. Error failures make the record
// invalid; warning failures flag it for attention without blocking.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule is a single built-in validation rule applied to an extracted record.
type Rule interface {
	Key() string
	Severity() Severity
	Validate(record domain.ParcelRecord) []Result
}

// Result is the outcome of one rule check against one field.
type Result struct {
	RuleKey  string   `json:"rule_key"`
	Severity Severity `json:"severity"`
	Passed   bool     `json:"passed"`
	Field    string   `json:"field"`
	Message  string   `json:"message,omitempty"`
}

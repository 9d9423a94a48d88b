package validator

import (
	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// Status summarizes a report: any failed error rule makes it invalid, any
// failed warning rule (with no errors) makes it a warning.
type Status string

const (
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusInvalid Status = "invalid"
)

// Report holds the results of validating one record.
type Report struct {
	Status  Status   `json:"status"`
	Results []Result `json:"results"`
}

// Failed reports whether any result for the given rule key did not pass.
func (r *Report) Failed(key string) bool {
	for _, res := range r.Results {
		if res.RuleKey == key && !res.Passed {
			return true
		}
	}
	return false
}

// Engine runs registered rules against extracted records.
type Engine struct {
	registry *Registry
}

// NewEngine creates a validation engine backed by the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// ValidateRecord runs every registered rule and aggregates the results.
func (e *Engine) ValidateRecord(record domain.ParcelRecord) Report {
	report := Report{Status: StatusValid}
	for _, rule := range e.registry.All() {
		for _, res := range rule.Validate(record) {
			report.Results = append(report.Results, res)
			if res.Passed {
				continue
			}
			if res.Severity == SeverityError {
				report.Status = StatusInvalid
			} else if report.Status != StatusInvalid {
				report.Status = StatusWarning
			}
		}
	}
	return report
}

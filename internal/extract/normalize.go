package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// Field normalization: pure, total, per-field canonicalization. Missing or
// malformed input degrades to sentinel values rather than failing.

var (
	letterPrefixUnitRe = regexp.MustCompile(`^[A-Z]-?(\d{2,4})$`)
	trailingLetterRe   = regexp.MustCompile(`^(\d{2,5})[A-Z]$`)
	digitsOnlyRe       = regexp.MustCompile(`^\d+$`)
)

var titleCaser = cases.Title(language.English)

// Normalize canonicalizes a merged candidate into the final ParcelRecord.
// Every field in the result is non-empty: misses become sentinels, except
// the parcel type which falls back to a concrete default.
func Normalize(c domain.Candidate) domain.ParcelRecord {
	return domain.ParcelRecord{
		Unit:       NormalizeUnit(c.Unit),
		Name:       NormalizeName(c.Name),
		Supplier:   NormalizeSupplier(c.Supplier),
		ParcelType: NormalizeParcelType(c.ParcelType),
	}
}

// NormalizeUnit canonicalizes a unit designator. A single letter prefix
// before 2-4 digits is stripped (B308 -> 308, B-310 -> 310), as is a single
// trailing letter after a digit run (1911B -> 1911). Other alphanumeric
// tokens, such as PH2 or BSMT, pass through: they are real designators, not
// OCR noise. Idempotent: normalizing an already-normalized unit is a no-op.
func NormalizeUnit(unit string) string {
	unit = strings.ToUpper(strings.TrimSpace(unit))
	if unit == "" || unit == domain.UnknownValue {
		return domain.UnknownValue
	}
	if m := letterPrefixUnitRe.FindStringSubmatch(unit); m != nil {
		return m[1]
	}
	if m := trailingLetterRe.FindStringSubmatch(unit); m != nil {
		return m[1]
	}
	return unit
}

// NormalizeName trims and title-cases the recipient name.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, domain.UnknownValue) {
		return domain.UnknownValue
	}
	return titleCaser.String(strings.ToLower(name))
}

// NormalizeSupplier uppercases the courier and forces anything outside the
// fixed enumeration to OTHER. OTHER is not UNKNOWN: it means a courier was
// seen but is not whitelisted.
func NormalizeSupplier(supplier string) string {
	supplier = strings.ToUpper(strings.TrimSpace(supplier))
	if supplier == "" {
		return domain.SupplierOther
	}
	if !domain.IsWhitelistedSupplier(supplier) {
		return domain.SupplierOther
	}
	return supplier
}

// NormalizeParcelType uppercases the packaging descriptor and collapses
// flexible-packaging synonyms onto PACKAGE. Empty or unknown input falls
// back to the default descriptor.
func NormalizeParcelType(parcelType string) string {
	parcelType = strings.ToUpper(strings.TrimSpace(parcelType))
	if parcelType == "" || parcelType == domain.UnknownValue {
		return domain.DefaultParcelType
	}

	fields := strings.Fields(parcelType)
	last := fields[len(fields)-1]

	// Multi-word synonyms first ("POLY BAG").
	if len(fields) >= 2 {
		lastTwo := fields[len(fields)-2] + " " + last
		if canonical, ok := domain.ParcelTypeSynonyms[lastTwo]; ok {
			prefix := strings.Join(fields[:len(fields)-2], " ")
			return joinParcelType(prefix, canonical)
		}
	}
	if canonical, ok := domain.ParcelTypeSynonyms[last]; ok {
		prefix := strings.Join(fields[:len(fields)-1], " ")
		return joinParcelType(prefix, canonical)
	}
	return parcelType
}

func joinParcelType(prefix, rigidity string) string {
	if prefix == "" {
		return rigidity
	}
	return prefix + " " + rigidity
}

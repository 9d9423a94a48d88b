package extract

import (
	"regexp"
	"strings"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// The local recognizer applies ordered rule tables to the OCR text blob:
// first satisfied rule wins per field. Rules are data, not nested
// conditionals, so the set stays auditable and testable in isolation.

// unitRule is one ordered predicate/extractor pair for unit detection.
type unitRule struct {
	name    string
	perLine bool
	re      *regexp.Regexp
}

var unitRules = []unitRule{
	// Digits adjacent to an explicit unit marker.
	{name: "keyword_marker", re: regexp.MustCompile(`(?:UNIT|SUITE|APT|APARTMENT|#)\s*[-:.]?\s*(\d{2,5})\b`)},
	// A short digit run closing out a text line; labels often print the
	// unit as a trailing number on the address line.
	{name: "trailing_digits", perLine: true, re: regexp.MustCompile(`(?:^|\s)(\d{2,4})\s*$`)},
	// Letter-prefixed unit token, e.g. B308 or B-310.
	{name: "letter_prefix", re: regexp.MustCompile(`\b[A-Z]-?(\d{2,4})\b`)},
}

var (
	// nameRe matches a contiguous run of two or more capitalized words.
	nameRe = regexp.MustCompile(`([A-Z][A-Z'\-]+(?:\s+[A-Z][A-Z'\-]+)+)`)

	// Digit shapes that must never be mistaken for a unit.
	postalCodeRe  = regexp.MustCompile(`\b[A-Z]\d[A-Z]\s?\d[A-Z]\d\b`)
	phoneNumberRe = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	longDigitRe   = regexp.MustCompile(`\d{6,}`)

	// trackingTokenRe matches tracking-number-shaped tokens: long mixed
	// alphanumeric runs such as "1Z999AA10123456784".
	trackingTokenRe = regexp.MustCompile(`\b[A-Z0-9]{10,}\b`)
)

// nameStopwords are capitalized label phrases that the name rule must not
// mistake for a recipient.
var nameStopwords = []string{
	"SHIP TO", "SHIP FROM", "DELIVER TO", "BILL TO", "RETURN TO",
	"CANADA POST", "POSTES CANADA", "UNITED STATES", "PRIORITY MAIL",
	"EXPRESS POST", "STANDARD SHIPPING", "TRACKING NUMBER",
	"ON CA", "QC CA", "BC CA",
}

// matchSupplier scans the text blob for the first whitelisted courier, in
// priority order.
func matchSupplier(text string) string {
	for _, s := range domain.SupplierWhitelist {
		if strings.Contains(text, s) {
			return s
		}
	}
	return ""
}

// matchName returns the first line-local run of two or more capitalized
// words that is not a known label phrase. Scanning per line keeps a header
// phrase from swallowing the name printed below it.
func matchName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		for _, m := range nameRe.FindAllStringSubmatch(line, -1) {
			candidate := m[1]
			if isLabelPhrase(candidate) {
				continue
			}
			return candidate
		}
	}
	return ""
}

func isLabelPhrase(s string) bool {
	for _, stop := range nameStopwords {
		if strings.Contains(s, stop) {
			return true
		}
	}
	for _, courier := range domain.SupplierWhitelist {
		if strings.Contains(s, courier) {
			return true
		}
	}
	return false
}

// matchUnit applies the ordered unit rules to the text blob. Postal codes,
// phone numbers, and tracking-shaped tokens are scrubbed first; they are the
// dominant source of false positives.
func matchUnit(text string) string {
	scrubbed := scrubNonUnitDigits(text)
	for _, rule := range unitRules {
		if rule.perLine {
			if unit := matchPerLine(scrubbed, rule.re); unit != "" {
				return unit
			}
			continue
		}
		if m := rule.re.FindStringSubmatch(scrubbed); m != nil {
			return m[1]
		}
	}
	return ""
}

func matchPerLine(text string, re *regexp.Regexp) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

func scrubNonUnitDigits(text string) string {
	text = postalCodeRe.ReplaceAllString(text, " ")
	text = phoneNumberRe.ReplaceAllString(text, " ")
	text = trackingTokenRe.ReplaceAllStringFunc(text, func(tok string) string {
		if strings.ContainsAny(tok, "0123456789") {
			return " "
		}
		return tok
	})
	text = longDigitRe.ReplaceAllString(text, " ")
	return text
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSupplierPriorityOrder(t *testing.T) {
	// Local courier labels often also carry an Amazon logo; the whitelist
	// priority decides.
	text := "SHIPPED VIA INTELCOM\nSOLD BY AMAZON.CA"
	assert.Equal(t, "AMAZON", matchSupplier(text))

	assert.Equal(t, "UPS", matchSupplier("UPS STANDARD"))
	assert.Equal(t, "CANADA POST", matchSupplier("DELIVERED BY CANADA POST"))
	assert.Equal(t, "", matchSupplier("NO COURIER HERE"))
}

func TestMatchName(t *testing.T) {
	text := "SHIP TO\nJANE DOE\n123 MAIN ST"
	assert.Equal(t, "JANE DOE", matchName(text))
}

func TestMatchNameSkipsLabelPhrases(t *testing.T) {
	assert.Equal(t, "", matchName("SHIP TO\nTRACKING NUMBER"))
	assert.Equal(t, "", matchName("CANADA POST PRIORITY MAIL"))
	// Courier names are not recipients.
	assert.Equal(t, "", matchName("FLEETOPTICS INC DELIVERY"))
}

func TestMatchUnit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"unit keyword", "JANE DOE\nUNIT 604\n123 MAIN ST", "604"},
		{"apt keyword with dash", "APT-1203", "1203"},
		{"hash marker", "# 310", "310"},
		{"trailing digits on line", "123 MAIN ST 604\nTORONTO", "604"},
		{"letter prefix token", "JANE DOE B-308\nSOMEWHERE", "308"},
		{"no unit", "JANE DOE\n123 MAIN STREET", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchUnit(tt.text))
		})
	}
}

func TestMatchUnitScrubsNonUnitDigits(t *testing.T) {
	// Postal code, phone number, and tracking number must not be mistaken
	// for units.
	text := "JANE DOE\nTORONTO ON M5V 2T6\nTEL 416-555-1234\n1Z999AA10123456784"
	assert.Equal(t, "", matchUnit(text))

	// A real unit survives the scrub.
	text = "UNIT 604\nM5V 2T6\n416-555-1234"
	assert.Equal(t, "604", matchUnit(text))
}

func TestScrubKeepsPureLetterWords(t *testing.T) {
	// Long all-letter words are not tracking numbers.
	scrubbed := scrubNonUnitDigits("APPARTEMENT 77")
	assert.Contains(t, scrubbed, "APPARTEMENT")
	assert.Contains(t, scrubbed, "77")
}

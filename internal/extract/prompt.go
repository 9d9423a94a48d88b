package extract

import (
	"fmt"
	"strings"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// BuildLabelPrompt returns the field-extraction instruction sent to the
// remote vision model. The model is asked for a strict single-object JSON
// result with exactly the four record keys.
func BuildLabelPrompt() string {
	return fmt.Sprintf(`Extract the following fields from this shipping label and return ONLY JSON:
1. "unit": apartment/suite/unit number (digits only, e.g., 1911B -> 1911, B-310 -> 310)
2. "name": recipient's full name
3. "supplier": courier company - must be one of:
   %s, or OTHER
4. "parcel_type": color + type (BROWN BOX, WHITE PACKAGE, GREY PACKAGE, etc.)

Return JSON only, no text explanation.`, strings.Join(domain.SupplierWhitelist, ", "))
}

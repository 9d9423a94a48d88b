package domain

// Sentinel field values. UnknownValue means recognition failed entirely;
// SupplierOther means a courier was present on the label but is not in the
// whitelist. The two must never be swapped.
const (
	UnknownValue  = "UNKNOWN"
	SupplierOther = "OTHER"
)

// DefaultParcelType is the fallback packaging descriptor. It is a concrete
// guess rather than an unknown sentinel: downstream logging always wants
// some packaging description.
const DefaultParcelType = "BROWN BOX"

// SupplierWhitelist is the fixed courier enumeration in detection priority
// order. Local couriers (UNI, DRAGONFLY, EMILE, FLEETOPTICS) come before the
// national carriers because their labels often also carry an Amazon or
// Canada Post logo.
var SupplierWhitelist = []string{
	"AMAZON",
	"UPS",
	"FEDEX",
	"UNI",
	"DRAGONFLY",
	"EMILE",
	"FLEETOPTICS",
	"DHL",
	"PUROLATOR",
	"INTELCOM",
	"CANPAR",
	"CANADA POST",
}

// IsWhitelistedSupplier reports whether s is an exact member of the courier
// enumeration.
func IsWhitelistedSupplier(s string) bool {
	for _, w := range SupplierWhitelist {
		if s == w {
			return true
		}
	}
	return false
}

// Packaging color tokens produced by the classifier or the remote extractor.
const (
	ColorBrown       = "BROWN"
	ColorWhite       = "WHITE"
	ColorBlack       = "BLACK"
	ColorGrey        = "GREY"
	ColorYellow      = "YELLOW"
	ColorPink        = "PINK"
	ColorTransparent = "TRANSPARENT"
)

// Packaging rigidity tokens.
const (
	TypeBox     = "BOX"
	TypePackage = "PACKAGE"
)

// ParcelTypeSynonyms maps flexible-packaging synonyms onto the canonical
// PACKAGE token.
var ParcelTypeSynonyms = map[string]string{
	"ENVELOPE": TypePackage,
	"MAILER":   TypePackage,
	"POLY BAG": TypePackage,
	"POLYBAG":  TypePackage,
	"BAG":      TypePackage,
}

// ImageType represents the allowed upload image types.
type ImageType string

const (
	ImageTypeJPG ImageType = "jpg"
	ImageTypePNG ImageType = "png"
)

// AllowedImageTypes maps ImageType to its MIME content type.
var AllowedImageTypes = map[ImageType]string{
	ImageTypeJPG: "image/jpeg",
	ImageTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to ImageType.
var AllowedContentTypes = map[string]ImageType{
	"image/jpeg": ImageTypeJPG,
	"image/png":  ImageTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to ImageType.
var AllowedExtensions = map[string]ImageType{
	"jpg":  ImageTypeJPG,
	"jpeg": ImageTypeJPG,
	"png":  ImageTypePNG,
}

// ValetStatus describes the hand-off outcome for a processed parcel.
type ValetStatus string

const (
	ValetStatusQueued ValetStatus = "queued"
	ValetStatusError  ValetStatus = "error"
)

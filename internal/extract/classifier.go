package extract

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

const (
	// edgeDensityBoxThreshold separates rigid boxes (sharp creases, printed
	// edges) from soft packages.
	edgeDensityBoxThreshold = 0.08

	// edgeGradientThreshold is the minimum luminance step between adjacent
	// pixels for a pixel to count as an edge.
	edgeGradientThreshold = 40

	// labelWhiteCutoff marks pixels bright enough to belong to the shipping
	// label itself. They are masked out of the color estimate so the label's
	// white background does not skew the package-body color.
	labelWhiteCutoff = 200

	// labelMaskLimit caps how much of the image may be masked before the
	// mask is abandoned (the parcel itself may simply be white).
	labelMaskLimit = 0.6
)

// ClassifyBytes decodes raw image bytes and classifies the packaging.
// Returns domain.ErrImageDecode when the bytes are not a standard raster
// image; callers substitute domain.DefaultParcelType.
func ClassifyBytes(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}
	return Classify(img), nil
}

// Classify estimates the packaging color and rigidity of a parcel photo.
// The result is "<COLOR> <TYPE>", e.g. "BROWN BOX". Pure and deterministic
// for identical pixels.
func Classify(img image.Image) string {
	r, g, b := meanColor(img)
	color := bucketColor(r, g, b)
	rigidity := domain.TypePackage
	if edgeDensity(img) > edgeDensityBoxThreshold {
		rigidity = domain.TypeBox
	}
	return color + " " + rigidity
}

// meanColor computes average channel values, masking out bright near-white
// regions presumed to be the label. If the mask would swallow most of the
// image the unmasked mean is used instead.
func meanColor(img image.Image) (float64, float64, float64) {
	bounds := img.Bounds()
	var sumR, sumG, sumB, count float64
	var allR, allG, allB, total float64

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			fr := float64(pr >> 8)
			fg := float64(pg >> 8)
			fb := float64(pb >> 8)

			allR += fr
			allG += fg
			allB += fb
			total++

			if fr > labelWhiteCutoff && fg > labelWhiteCutoff && fb > labelWhiteCutoff {
				continue
			}
			sumR += fr
			sumG += fg
			sumB += fb
			count++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	masked := (total - count) / total
	if count == 0 || masked > labelMaskLimit {
		return allR / total, allG / total, allB / total
	}
	return sumR / count, sumG / count, sumB / count
}

// bucketColor maps mean channel values onto a discrete color token using
// fixed thresholds.
func bucketColor(r, g, b float64) string {
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}

	switch {
	case max < 60:
		return domain.ColorBlack
	case r > 200 && g > 200 && b > 200:
		return domain.ColorWhite
	case r > 200 && g > 180 && b < 130:
		return domain.ColorYellow
	case r > 200 && g < 180 && b > 150:
		return domain.ColorPink
	case abs(r-g) < 15 && abs(g-b) < 15:
		return domain.ColorGrey
	default:
		return domain.ColorBrown
	}
}

// edgeDensity returns the fraction of pixels whose horizontal or vertical
// luminance gradient exceeds the edge threshold.
func edgeDensity(img image.Image) float64 {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w < 2 || h < 2 {
		return 0
	}

	gray := make([][]int, h)
	for y := 0; y < h; y++ {
		gray[y] = make([]int, w)
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray[y][x] = luminance(int(r>>8), int(g>>8), int(b>>8))
		}
	}

	var edges, total int
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			dx := gray[y][x+1] - gray[y][x]
			dy := gray[y+1][x] - gray[y][x]
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			if dx > edgeGradientThreshold || dy > edgeGradientThreshold {
				edges++
			}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(edges) / float64(total)
}

// luminance converts 8-bit RGB to integer luma (ITU-R BT.601 weights).
func luminance(r, g, b int) int {
	return (299*r + 587*g + 114*b) / 1000
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

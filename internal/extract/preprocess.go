package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// defaultMaxDim bounds the longest image side fed to the OCR engine. Phone
// photos arrive at 4000px and up; Tesseract gains nothing past ~1600px.
const defaultMaxDim = 1600

// preprocessForOCR prepares a label photo for text recognition: downscale,
// grayscale, smooth, then binarize with Otsu's global threshold. The result
// is re-encoded as PNG for the recognition engine.
func preprocessForOCR(data []byte, maxDim int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}
	if maxDim <= 0 {
		maxDim = defaultMaxDim
	}

	img = downscale(img, maxDim)
	gray := toGray(img)
	smoothed := boxBlur(gray)
	bin := binarizeOtsu(smoothed)

	var buf bytes.Buffer
	if err := png.Encode(&buf, bin); err != nil {
		return nil, fmt.Errorf("encoding preprocessed image: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale shrinks img so its longest side is at most maxDim, preserving
// aspect ratio. Images already within bounds are returned unchanged.
func downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			dst.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: uint8(luminance(int(r>>8), int(g>>8), int(bl>>8)))})
		}
	}
	return dst
}

// boxBlur applies a 3x3 mean filter. A stand-in for edge-preserving
// smoothing that is good enough for printed-label text.
func boxBlur(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum, n int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					sum += int(src.GrayAt(nx, ny).Y)
					n++
				}
			}
			dst.Pix[y*dst.Stride+x] = uint8(sum / n)
		}
	}
	return dst
}

// binarizeOtsu thresholds a grayscale image at the level that maximizes
// between-class variance over the luminance histogram.
func binarizeOtsu(src *image.Gray) *image.Gray {
	threshold := otsuThreshold(src)
	b := src.Bounds()
	dst := image.NewGray(b)
	for i, p := range src.Pix {
		if int(p) > threshold {
			dst.Pix[i] = 255
		} else {
			dst.Pix[i] = 0
		}
	}
	return dst
}

func otsuThreshold(src *image.Gray) int {
	var hist [256]int
	for _, p := range src.Pix {
		hist[p]++
	}
	total := len(src.Pix)
	if total == 0 {
		return 127
	}

	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i * c)
	}

	var sumBg, weightBg float64
	bestThreshold, bestVariance := 127, 0.0
	for t := 0; t < 256; t++ {
		weightBg += float64(hist[t])
		if weightBg == 0 {
			continue
		}
		weightFg := float64(total) - weightBg
		if weightFg == 0 {
			break
		}
		sumBg += float64(t * hist[t])
		meanBg := sumBg / weightBg
		meanFg := (sumAll - sumBg) / weightFg
		variance := weightBg * weightFg * (meanBg - meanFg) * (meanBg - meanFg)
		if variance > bestVariance {
			bestVariance = variance
			bestThreshold = t
		}
	}
	return bestThreshold
}

package extract

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(c color.RGBA, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func checkerImage(a, b color.RGBA, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img
}

func TestClassifySolidColors(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want string
	}{
		{"cardboard brown", color.RGBA{150, 100, 60, 255}, "BROWN PACKAGE"},
		{"white mailer", color.RGBA{230, 230, 230, 255}, "WHITE PACKAGE"},
		{"black poly", color.RGBA{25, 25, 25, 255}, "BLACK PACKAGE"},
		{"grey bubble mailer", color.RGBA{120, 125, 115, 255}, "GREY PACKAGE"},
		{"yellow padded envelope", color.RGBA{235, 200, 90, 255}, "YELLOW PACKAGE"},
		{"pink poly", color.RGBA{240, 140, 180, 255}, "PINK PACKAGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(solidImage(tt.c, 40, 40)))
		})
	}
}

func TestClassifyHighEdgeDensityIsBox(t *testing.T) {
	// Alternating dark pixels give a gradient at every step.
	img := checkerImage(color.RGBA{30, 30, 30, 255}, color.RGBA{110, 110, 110, 255}, 40, 40)
	got := Classify(img)
	assert.Contains(t, got, "BOX")
}

func TestClassifyDeterministic(t *testing.T) {
	img := solidImage(color.RGBA{150, 100, 60, 255}, 40, 40)
	assert.Equal(t, Classify(img), Classify(img))
}

func TestClassifyBytesDecodesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(color.RGBA{150, 100, 60, 255}, 20, 20)))

	got, err := ClassifyBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "BROWN PACKAGE", got)
}

func TestClassifyBytesRejectsGarbage(t *testing.T) {
	_, err := ClassifyBytes([]byte("not an image"))
	assert.Error(t, err)
}

package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
)

// Quality thresholds for readability hints. A Laplacian variance under the
// blur threshold means few sharp edges; brightness is the mean gray value on
// a 0-255 scale.
const (
	blurVarianceThreshold = 100.0
	minBrightness         = 80.0
	maxBrightness         = 220.0
)

// QualityHints describes why a label image may have produced unreadable OCR
// text. Advisory only: it feeds error detail text, never verification
// verdicts.
type QualityHints struct {
	LaplacianVar float64
	Brightness   float64
	Blurry       bool
	TooDark      bool
	TooBright    bool
}

// Summary renders the detected issues as a short human-readable string, or
// "" when nothing stands out.
func (h QualityHints) Summary() string {
	switch {
	case h.Blurry && h.TooDark:
		return "image appears blurry and too dark"
	case h.Blurry && h.TooBright:
		return "image appears blurry and overexposed"
	case h.Blurry:
		return "image appears blurry"
	case h.TooDark:
		return "image appears too dark"
	case h.TooBright:
		return "image appears overexposed"
	}
	return ""
}

// Inspector computes readability hints for label images.
type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect decodes the image and measures sharpness and brightness.
func (in *Inspector) Inspect(imageData []byte) (*QualityHints, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return in.InspectImage(img), nil
}

// InspectImage measures an already-decoded image.
func (in *Inspector) InspectImage(img image.Image) *QualityHints {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)

	variance := laplacianVariance(gray)
	brightness := meanBrightness(gray)

	return &QualityHints{
		LaplacianVar: variance,
		Brightness:   brightness,
		Blurry:       variance < blurVarianceThreshold,
		TooDark:      brightness < minBrightness,
		TooBright:    brightness > maxBrightness,
	}
}

func laplacianVariance(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var sum, sumSq float64
	kernel := [3][3]int{{0, 1, 0}, {1, -4, 1}, {0, 1, 0}}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			var val int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					pixel := int(gray.GrayAt(bounds.Min.X+x+kx, bounds.Min.Y+y+ky).Y)
					val += pixel * kernel[ky+1][kx+1]
				}
			}
			fVal := float64(val)
			sum += fVal
			sumSq += fVal * fVal
		}
	}

	n := float64((width - 2) * (height - 2))
	if n <= 0 {
		return 0
	}
	mean := sum / n
	return (sumSq / n) - (mean * mean)
}

func meanBrightness(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	n := float64(bounds.Dx() * bounds.Dy())
	if n == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			total += float64(gray.GrayAt(x, y).Y)
		}
	}
	return total / n
}

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func uniformImage(value uint8, width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: value})
		}
	}
	return img
}

func checkerboardImage(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestInspectImageUniform(t *testing.T) {
	inspector := NewInspector()

	t.Run("mid gray is blurry but well exposed", func(t *testing.T) {
		hints := inspector.InspectImage(uniformImage(128, 16, 16))
		if !hints.Blurry {
			t.Error("uniform image should read as blurry (no edges)")
		}
		if hints.TooDark || hints.TooBright {
			t.Errorf("mid gray flagged as dark=%v bright=%v", hints.TooDark, hints.TooBright)
		}
		if hints.LaplacianVar != 0 {
			t.Errorf("LaplacianVar = %v, want 0 for uniform image", hints.LaplacianVar)
		}
	})

	t.Run("dark image", func(t *testing.T) {
		hints := inspector.InspectImage(uniformImage(10, 16, 16))
		if !hints.TooDark {
			t.Error("near-black image should read as too dark")
		}
	})

	t.Run("bright image", func(t *testing.T) {
		hints := inspector.InspectImage(uniformImage(250, 16, 16))
		if !hints.TooBright {
			t.Error("near-white image should read as too bright")
		}
	})
}

func TestInspectImageSharp(t *testing.T) {
	inspector := NewInspector()
	hints := inspector.InspectImage(checkerboardImage(16, 16))
	if hints.Blurry {
		t.Errorf("checkerboard should read as sharp, LaplacianVar = %v", hints.LaplacianVar)
	}
}

func TestInspectDecodesBytes(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, uniformImage(128, 16, 16)); err != nil {
		t.Fatalf("encode test image: %v", err)
	}

	inspector := NewInspector()
	hints, err := inspector.Inspect(buf.Bytes())
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if !hints.Blurry {
		t.Error("uniform PNG should read as blurry")
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	inspector := NewInspector()
	if _, err := inspector.Inspect([]byte("not an image")); err == nil {
		t.Error("expected error for undecodable bytes")
	}
}

func TestQualityHintsSummary(t *testing.T) {
	tests := []struct {
		name     string
		hints    QualityHints
		expected string
	}{
		{"no issues", QualityHints{}, ""},
		{"blurry only", QualityHints{Blurry: true}, "image appears blurry"},
		{"dark only", QualityHints{TooDark: true}, "image appears too dark"},
		{"bright only", QualityHints{TooBright: true}, "image appears overexposed"},
		{"blurry and dark", QualityHints{Blurry: true, TooDark: true}, "image appears blurry and too dark"},
		{"blurry and bright", QualityHints{Blurry: true, TooBright: true}, "image appears blurry and overexposed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hints.Summary(); got != tt.expected {
				t.Errorf("Summary() = %q, want %q", got, tt.expected)
			}
		})
	}
}

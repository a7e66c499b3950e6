package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Engine turns a label image into raw text. Implementations must be safe for
// concurrent use.
type Engine interface {
	ExtractText(ctx context.Context, imageData []byte) (string, error)
}

// TesseractEngine implements Engine on top of the Tesseract OCR library via
// gosseract. A gosseract client is not safe for concurrent use, so one client
// is created per call.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine creates a Tesseract-backed OCR engine. Language is a
// Tesseract language code such as "eng"; empty means the Tesseract default.
func NewTesseractEngine(language string) *TesseractEngine {
	return &TesseractEngine{language: language}
}

type ocrOutcome struct {
	text string
	err  error
}

// ExtractText runs OCR over the raw image bytes and returns the recognized
// text. The run is abandoned when ctx expires; Tesseract itself keeps
// running until it finishes, but its result is discarded.
func (e *TesseractEngine) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	if len(imageData) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	done := make(chan ocrOutcome, 1)
	go func() {
		client := gosseract.NewClient()
		defer client.Close()

		if e.language != "" {
			if err := client.SetLanguage(e.language); err != nil {
				done <- ocrOutcome{err: fmt.Errorf("set OCR language %q: %w", e.language, err)}
				return
			}
		}
		if err := client.SetImageFromBytes(imageData); err != nil {
			done <- ocrOutcome{err: fmt.Errorf("load image into OCR engine: %w", err)}
			return
		}

		text, err := client.Text()
		if err != nil {
			done <- ocrOutcome{err: fmt.Errorf("recognize text: %w", err)}
			return
		}
		done <- ocrOutcome{text: text}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case outcome := <-done:
		return outcome.text, outcome.err
	}
}

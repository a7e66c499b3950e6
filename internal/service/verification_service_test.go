package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	apperrors "go-label-verifier/internal/errors"
	"go-label-verifier/internal/observer"
	"go-label-verifier/pkg/models"
)

const labelText = "Old Barrel Whiskey 40% ALC/VOL 750 mL GOVERNMENT WARNING: do not drink when pregnant or before driving"

// stubEngine returns canned OCR output.
type stubEngine struct {
	text string
	err  error
}

func (s *stubEngine) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	return s.text, s.err
}

// stubRepo returns canned image bytes.
type stubRepo struct {
	data        []byte
	fetchErr    error
	validateErr error
}

func (s *stubRepo) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	return s.data, s.fetchErr
}

func (s *stubRepo) ValidateImageURL(imageURL string) error {
	return s.validateErr
}

func testImageBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func expectedFields() models.ExpectedFields {
	return models.ExpectedFields{
		BrandName:      "Old Barrel",
		ProductClass:   "Whiskey",
		AlcoholContent: "40",
		NetContents:    "750 ml",
	}
}

func TestVerifyImage(t *testing.T) {
	ctx := context.Background()

	t.Run("successful verification", func(t *testing.T) {
		svc := NewLabelVerificationService(&stubEngine{text: labelText}, &stubRepo{}, Options{})

		result, err := svc.VerifyImage(ctx, "label.png", testImageBytes(t), expectedFields())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.OverallMatch {
			t.Errorf("OverallMatch = false, want true; checks: %+v", result.Checks)
		}
		if len(result.Checks) != 5 {
			t.Errorf("got %d checks, want 5", len(result.Checks))
		}
	})

	t.Run("empty filename is a client error", func(t *testing.T) {
		svc := NewLabelVerificationService(&stubEngine{text: labelText}, &stubRepo{}, Options{})

		_, err := svc.VerifyImage(ctx, "", testImageBytes(t), expectedFields())
		if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			t.Errorf("error = %v, want validation error", err)
		}
	})

	t.Run("empty image data is a client error", func(t *testing.T) {
		svc := NewLabelVerificationService(&stubEngine{text: labelText}, &stubRepo{}, Options{})

		_, err := svc.VerifyImage(ctx, "label.png", nil, expectedFields())
		if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			t.Errorf("error = %v, want validation error", err)
		}
	})

	t.Run("non-image upload is a client error", func(t *testing.T) {
		svc := NewLabelVerificationService(&stubEngine{text: labelText}, &stubRepo{}, Options{})

		_, err := svc.VerifyImage(ctx, "label.txt", []byte("plain text, not an image"), expectedFields())
		if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			t.Errorf("error = %v, want validation error", err)
		}
	})

	t.Run("short OCR text is a quality error", func(t *testing.T) {
		svc := NewLabelVerificationService(&stubEngine{text: "abc"}, &stubRepo{}, Options{})

		_, err := svc.VerifyImage(ctx, "label.png", testImageBytes(t), expectedFields())
		if !apperrors.IsType(err, apperrors.ErrorTypeQuality) {
			t.Fatalf("error = %v, want quality error", err)
		}
		appErr := err.(*apperrors.AppError)
		if appErr.Message != unreadableTextMessage {
			t.Errorf("message = %q, want %q", appErr.Message, unreadableTextMessage)
		}
	})

	t.Run("whitespace padding does not satisfy the quality gate", func(t *testing.T) {
		svc := NewLabelVerificationService(&stubEngine{text: "   ab   \n\n\t  "}, &stubRepo{}, Options{})

		_, err := svc.VerifyImage(ctx, "label.png", testImageBytes(t), expectedFields())
		if !apperrors.IsType(err, apperrors.ErrorTypeQuality) {
			t.Errorf("error = %v, want quality error", err)
		}
	})

	t.Run("OCR failure is a processing error", func(t *testing.T) {
		svc := NewLabelVerificationService(&stubEngine{err: errors.New("tesseract exploded")}, &stubRepo{}, Options{})

		_, err := svc.VerifyImage(ctx, "label.png", testImageBytes(t), expectedFields())
		if !apperrors.IsType(err, apperrors.ErrorTypeProcessing) {
			t.Errorf("error = %v, want processing error", err)
		}
	})
}

func TestVerifyImageURL(t *testing.T) {
	ctx := context.Background()

	t.Run("successful verification", func(t *testing.T) {
		repo := &stubRepo{data: testImageBytes(t)}
		svc := NewLabelVerificationService(&stubEngine{text: labelText}, repo, Options{})

		result, err := svc.VerifyImageURL(ctx, "https://example.com/label.png", expectedFields())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.OverallMatch {
			t.Errorf("OverallMatch = false, want true")
		}
	})

	t.Run("invalid URL is rejected", func(t *testing.T) {
		repo := &stubRepo{validateErr: apperrors.NewValidationError("URL cannot be empty", nil)}
		svc := NewLabelVerificationService(&stubEngine{text: labelText}, repo, Options{})

		_, err := svc.VerifyImageURL(ctx, "", expectedFields())
		if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			t.Errorf("error = %v, want validation error", err)
		}
	})

	t.Run("fetch failure is a network error", func(t *testing.T) {
		repo := &stubRepo{fetchErr: errors.New("connection refused")}
		svc := NewLabelVerificationService(&stubEngine{text: labelText}, repo, Options{})

		_, err := svc.VerifyImageURL(ctx, "https://example.com/label.png", expectedFields())
		if !apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
			t.Errorf("error = %v, want network error", err)
		}
	})

	t.Run("fetch timeout is a timeout error", func(t *testing.T) {
		repo := &stubRepo{fetchErr: context.DeadlineExceeded}
		svc := NewLabelVerificationService(&stubEngine{text: labelText}, repo, Options{})

		_, err := svc.VerifyImageURL(ctx, "https://example.com/label.png", expectedFields())
		if !apperrors.IsType(err, apperrors.ErrorTypeTimeout) {
			t.Errorf("error = %v, want timeout error", err)
		}
	})

	t.Run("empty fetched image is rejected", func(t *testing.T) {
		repo := &stubRepo{data: nil}
		svc := NewLabelVerificationService(&stubEngine{text: labelText}, repo, Options{})

		_, err := svc.VerifyImageURL(ctx, "https://example.com/label.png", expectedFields())
		if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			t.Errorf("error = %v, want validation error", err)
		}
	})
}

func TestObserversAreNotified(t *testing.T) {
	ctx := context.Background()
	metrics := observer.NewMetricsObserver()
	svc := NewLabelVerificationService(&stubEngine{text: labelText}, &stubRepo{}, Options{}, metrics)

	if _, err := svc.VerifyImage(ctx, "label.png", testImageBytes(t), expectedFields()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A quality-gated request counts as rejected, not completed.
	short := NewLabelVerificationService(&stubEngine{text: "abc"}, &stubRepo{}, Options{}, metrics)
	if _, err := short.VerifyImage(ctx, "label.png", testImageBytes(t), expectedFields()); err == nil {
		t.Fatal("expected quality error")
	}

	snapshot := metrics.Snapshot()
	if snapshot["total_verifications"].(int64) != 2 {
		t.Errorf("total_verifications = %v, want 2", snapshot["total_verifications"])
	}
	if snapshot["matched_labels"].(int64) != 1 {
		t.Errorf("matched_labels = %v, want 1", snapshot["matched_labels"])
	}
	if snapshot["rejected_requests"].(int64) != 1 {
		t.Errorf("rejected_requests = %v, want 1", snapshot["rejected_requests"])
	}
}

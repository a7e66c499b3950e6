package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "go-label-verifier/internal/errors"
	"go-label-verifier/internal/imaging"
	"go-label-verifier/internal/logger"
	"go-label-verifier/internal/observer"
	"go-label-verifier/internal/ocr"
	"go-label-verifier/internal/repository"
	"go-label-verifier/internal/verify"
	"go-label-verifier/pkg/models"
	"go-label-verifier/pkg/validation"

	"github.com/sirupsen/logrus"
)

// unreadableTextMessage is shown to the end user when the OCR quality gate
// rejects the extracted text.
const unreadableTextMessage = "Could not read text from image. Please try a clearer image."

// LabelVerificationService runs the full verification flow: input gates, OCR,
// then the core verifier.
type LabelVerificationService interface {
	// VerifyImage verifies an uploaded label image against the expected fields
	VerifyImage(ctx context.Context, filename string, imageData []byte, fields models.ExpectedFields) (*models.VerificationResult, error)

	// VerifyImageURL fetches a label image by URL and verifies it
	VerifyImageURL(ctx context.Context, imageURL string, fields models.ExpectedFields) (*models.VerificationResult, error)
}

type labelVerificationService struct {
	engine          ocr.Engine
	verifier        *verify.Verifier
	imageRepo       repository.LabelImageRepository
	inspector       *imaging.Inspector
	uploadValidator *validation.UploadValidator
	observers       []observer.Observer

	ocrTimeout    time.Duration
	minTextLength int
}

// Options configures a label verification service.
type Options struct {
	OCRTimeout    time.Duration
	MinTextLength int
	MaxUploadSize int64
}

// NewLabelVerificationService creates the verification service.
func NewLabelVerificationService(
	engine ocr.Engine,
	imageRepo repository.LabelImageRepository,
	opts Options,
	observers ...observer.Observer,
) LabelVerificationService {
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = 10
	}
	if opts.OCRTimeout <= 0 {
		opts.OCRTimeout = 20 * time.Second
	}

	return &labelVerificationService{
		engine:          engine,
		verifier:        verify.NewVerifier(),
		imageRepo:       imageRepo,
		inspector:       imaging.NewInspector(),
		uploadValidator: validation.NewUploadValidator(opts.MaxUploadSize),
		observers:       observers,
		ocrTimeout:      opts.OCRTimeout,
		minTextLength:   opts.MinTextLength,
	}
}

// VerifyImage verifies an uploaded label image against the expected fields
func (s *labelVerificationService) VerifyImage(ctx context.Context, filename string, imageData []byte, fields models.ExpectedFields) (*models.VerificationResult, error) {
	start := time.Now()
	s.notify(ctx, observer.VerificationEvent{
		EventType: observer.VerificationStarted,
		Timestamp: start,
		Source:    "upload",
	})

	if err := s.uploadValidator.ValidateUpload(filename, imageData); err != nil {
		s.notifyRejected(ctx, "upload", start, err)
		return nil, err
	}

	return s.verifyImageData(ctx, "upload", start, imageData, fields)
}

// VerifyImageURL fetches a label image by URL and verifies it
func (s *labelVerificationService) VerifyImageURL(ctx context.Context, imageURL string, fields models.ExpectedFields) (*models.VerificationResult, error) {
	start := time.Now()
	s.notify(ctx, observer.VerificationEvent{
		EventType: observer.VerificationStarted,
		Timestamp: start,
		Source:    "url",
	})

	if err := s.imageRepo.ValidateImageURL(imageURL); err != nil {
		s.notifyRejected(ctx, "url", start, err)
		return nil, err
	}

	imageData, err := s.imageRepo.FetchImage(ctx, imageURL)
	if err != nil {
		var fetchErr *apperrors.AppError
		if errors.Is(err, context.DeadlineExceeded) {
			fetchErr = apperrors.NewTimeoutError("Image fetch timeout", err)
		} else {
			fetchErr = apperrors.NewNetworkError("Failed to fetch image", err)
		}
		s.notifyFailed(ctx, "url", start, fetchErr)
		return nil, fetchErr
	}
	if len(imageData) == 0 {
		valErr := apperrors.NewValidationError("Fetched image is empty", nil)
		s.notifyRejected(ctx, "url", start, valErr)
		return nil, valErr
	}

	return s.verifyImageData(ctx, "url", start, imageData, fields)
}

// verifyImageData runs OCR, the quality gate, and the core verifier over raw
// image bytes.
func (s *labelVerificationService) verifyImageData(ctx context.Context, source string, start time.Time, imageData []byte, fields models.ExpectedFields) (*models.VerificationResult, error) {
	ocrCtx, cancel := context.WithTimeout(ctx, s.ocrTimeout)
	defer cancel()

	rawText, err := s.engine.ExtractText(ocrCtx, imageData)
	if err != nil {
		var ocrErr *apperrors.AppError
		if errors.Is(err, context.DeadlineExceeded) {
			ocrErr = apperrors.NewTimeoutError("OCR processing timeout", err)
		} else {
			ocrErr = apperrors.NewProcessingError("Failed to process image", err)
		}
		s.notifyFailed(ctx, source, start, ocrErr)
		return nil, ocrErr
	}

	if utf8.RuneCountInString(strings.TrimSpace(rawText)) < s.minTextLength {
		qualityErr := apperrors.NewQualityError(unreadableTextMessage, nil)
		if hint := s.imageQualityHint(imageData); hint != "" {
			qualityErr = qualityErr.WithDetails(hint)
		}
		s.notifyRejected(ctx, source, start, qualityErr)
		return nil, qualityErr
	}

	result := s.verifier.Verify(rawText, fields)
	s.logSimilarityDiagnostics(rawText, fields, result)

	s.notify(ctx, observer.VerificationEvent{
		EventType:      observer.VerificationCompleted,
		Timestamp:      time.Now(),
		Source:         source,
		ProcessingTime: time.Since(start),
		OverallMatch:   result.OverallMatch,
	})

	return &result, nil
}

// imageQualityHint inspects the image to explain why OCR likely came back
// empty. Best effort: an undecodable image just produces no hint.
func (s *labelVerificationService) imageQualityHint(imageData []byte) string {
	hints, err := s.inspector.Inspect(imageData)
	if err != nil {
		logger.WithError(err).Debug("Could not inspect image for quality hints")
		return ""
	}
	return hints.Summary()
}

// logSimilarityDiagnostics logs how close each failed text field came to the
// label text. Debug-level aid for tuning OCR; verdicts are untouched.
func (s *labelVerificationService) logSimilarityDiagnostics(rawText string, fields models.ExpectedFields, result models.VerificationResult) {
	if !logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	for _, check := range result.Checks {
		if check.Matched {
			continue
		}
		var expected string
		switch check.Field {
		case verify.FieldBrandName:
			expected = fields.BrandName
		case verify.FieldProductClass:
			expected = fields.ProductClass
		default:
			continue
		}
		token, score := ocr.ClosestToken(expected, rawText)
		logger.WithFields(logrus.Fields{
			"field":         check.Field,
			"expected":      expected,
			"closest_token": token,
			"similarity":    score,
		}).Debug("Field mismatch similarity diagnostic")
	}
}

func (s *labelVerificationService) notify(ctx context.Context, event observer.VerificationEvent) {
	for _, o := range s.observers {
		o.OnEvent(ctx, event)
	}
}

func (s *labelVerificationService) notifyRejected(ctx context.Context, source string, start time.Time, err error) {
	s.notify(ctx, observer.VerificationEvent{
		EventType:      observer.VerificationRejected,
		Timestamp:      time.Now(),
		Source:         source,
		ProcessingTime: time.Since(start),
		ErrorMessage:   err.Error(),
	})
}

func (s *labelVerificationService) notifyFailed(ctx context.Context, source string, start time.Time, err error) {
	s.notify(ctx, observer.VerificationEvent{
		EventType:      observer.VerificationFailed,
		Timestamp:      time.Now(),
		Source:         source,
		ProcessingTime: time.Since(start),
		ErrorMessage:   err.Error(),
	})
}

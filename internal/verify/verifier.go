package verify

import (
	"go-label-verifier/pkg/models"
)

// previewLimit caps the extracted text preview returned with each result.
const previewLimit = 200

// Display names used in field check results.
const (
	FieldBrandName         = "Brand Name"
	FieldProductClass      = "Product Class/Type"
	FieldAlcoholContent    = "Alcohol Content"
	FieldNetContents       = "Net Contents"
	FieldGovernmentWarning = "Government Warning"
)

// Verifier runs every field matcher against one label text. It holds no
// state and is safe for concurrent use across requests.
type Verifier struct{}

// NewVerifier creates a label verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify checks raw OCR label text against the expected fields and aggregates
// the per-field verdicts into a single result. Checks run in fixed order:
// brand name, product class, alcohol content, net contents, government
// warning. The net contents check only runs when the field was provided; a
// skipped optional check does not count against the overall match. Field
// level problems never abort the run.
func (v *Verifier) Verify(rawText string, fields models.ExpectedFields) models.VerificationResult {
	result := models.VerificationResult{
		OverallMatch:         true,
		ExtractedTextPreview: previewText(rawText),
	}

	record := func(field string, matched bool, message string) {
		result.Checks = append(result.Checks, models.FieldCheckResult{
			Field:   field,
			Matched: matched,
			Message: message,
		})
		if !matched {
			result.OverallMatch = false
		}
	}

	matched, msg := CheckTextField(rawText, fields.BrandName, FieldBrandName)
	record(FieldBrandName, matched, msg)

	matched, msg = CheckTextField(rawText, fields.ProductClass, FieldProductClass)
	record(FieldProductClass, matched, msg)

	matched, msg = CheckAlcoholContent(rawText, fields.AlcoholContent)
	record(FieldAlcoholContent, matched, msg)

	if fields.NetContents != "" {
		matched, msg = CheckNetContents(rawText, fields.NetContents)
		record(FieldNetContents, matched, msg)
	}

	matched, msg = CheckGovernmentWarning(rawText)
	record(FieldGovernmentWarning, matched, msg)

	return result
}

// previewText returns the first 200 characters of the raw text, with an
// ellipsis marker appended when truncated.
func previewText(raw string) string {
	runes := []rune(raw)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit]) + "..."
	}
	return raw
}

package models

// ExpectedFields holds the form-submitted regulatory field values to verify
// against the label text. Empty strings mean the field was not provided.
// NetContents is the only field that may be absent without failing
// verification.
type ExpectedFields struct {
	BrandName      string `json:"brandName" form:"brandName"`
	ProductClass   string `json:"productClass" form:"productClass"`
	AlcoholContent string `json:"alcoholContent" form:"alcoholContent"`
	NetContents    string `json:"netContents" form:"netContents"`
}

// FieldCheckResult is the verdict for a single regulatory field.
type FieldCheckResult struct {
	Field   string `json:"field"`
	Matched bool   `json:"matched"`
	Message string `json:"message"`
}

// VerificationResult aggregates all field checks for one label.
type VerificationResult struct {
	OverallMatch         bool               `json:"overall_match"`
	ExtractedTextPreview string             `json:"extracted_text_preview"`
	Checks               []FieldCheckResult `json:"checks"`
}

package entity

// TruthRecord is one expectation read from the truth source.
type TruthRecord struct {
	FileName      string `json:"file_name"`
	Page          int    `json:"page"`
	PageRaw       string `json:"-"`
	PageDefaulted bool   `json:"-"`
	FieldName     string `json:"field_name"`
	ExpectedText  string `json:"expected_text"`
	Line          int    `json:"-"` // 1-based line in the truth source
}

// Mismatch is a truth row that failed validation.
type Mismatch struct {
	TruthRecord
	ValidationError  string `json:"validation_error"`
	OCROutputSnippet string `json:"ocr_output_snippet,omitempty"`
}

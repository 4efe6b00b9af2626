package constants

// RowStatus is the outcome of validating a single truth row.
type RowStatus string

const (
	RowMatch        RowStatus = "MATCH"         // expected text found
	RowMismatch     RowStatus = "MISMATCH"      // extracted text lacks expected text
	RowPDFNotFound  RowStatus = "PDF_NOT_FOUND" // referenced PDF absent
	RowExtractError RowStatus = "EXTRACT_ERROR" // extractor returned an error
)

// RunStatus is the canonical status for rows in validation_run.
type RunStatus string

// Stable values (store these exact strings in DB).
const (
	RunStatusRunning RunStatus = "RUNNING" // in progress
	RunStatusPassed  RunStatus = "PASSED"  // zero mismatches
	RunStatusFailed  RunStatus = "FAILED"  // one or more mismatches
	RunStatusError   RunStatus = "ERROR"   // structural failure, run aborted
)

// ValidationError values written into mismatch records.
const (
	ErrTextMismatch   = "Mismatch"
	PDFNotFoundPrefix = "PDF not found: "
)

// SnippetLimit is the number of characters of OCR output kept on a mismatch.
const SnippetLimit = 200

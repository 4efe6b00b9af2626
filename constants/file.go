package constants

import "strings"

// PDFExt is the only document extension the validator and the OCR directory walker accept.
const PDFExt = "pdf"

// TruthColumns are the columns a truth CSV must carry, in report order.
var TruthColumns = []string{"file_name", "page", "field_name", "expected_text"}

// ReportColumns are TruthColumns plus the two diagnostic columns added to mismatch reports.
var ReportColumns = append(append([]string{}, TruthColumns...), "validation_error", "ocr_output_snippet")

// Truth CSV column names.
const (
	ColFileName     = "file_name"
	ColPage         = "page"
	ColFieldName    = "field_name"
	ColExpectedText = "expected_text"
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDF reports whether name carries a .pdf extension (case-insensitive).
func IsPDF(name string) bool {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return false
	}
	return NormalizeExt(name[i:]) == PDFExt
}

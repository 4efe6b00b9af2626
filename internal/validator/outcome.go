package validator

import (
	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/entity"
)

// rowOutcome is the tagged result of checking one truth row.
type rowOutcome struct {
	status  constants.RowStatus
	message string // ValidationError text for non-match outcomes
	text    string // extracted text, kept for the snippet
}

func matched() rowOutcome { return rowOutcome{status: constants.RowMatch} }

func pdfNotFound(path string) rowOutcome {
	return rowOutcome{status: constants.RowPDFNotFound, message: constants.PDFNotFoundPrefix + path}
}

func extractFailed(err error) rowOutcome {
	return rowOutcome{status: constants.RowExtractError, message: err.Error()}
}

func textMismatch(text string) rowOutcome {
	return rowOutcome{status: constants.RowMismatch, message: constants.ErrTextMismatch, text: text}
}

// mismatch converts a non-match outcome into the reported record.
func (o rowOutcome) mismatch(rec entity.TruthRecord) (entity.Mismatch, bool) {
	if o.status == constants.RowMatch || o.status == "" {
		return entity.Mismatch{}, false
	}
	m := entity.Mismatch{TruthRecord: rec, ValidationError: o.message}
	if o.status == constants.RowMismatch {
		m.OCROutputSnippet = Snippet(o.text)
	}
	return m, true
}

// Snippet returns the first SnippetLimit characters of text, with "..."
// appended only when something was cut.
func Snippet(text string) string {
	r := []rune(text)
	if len(r) <= constants.SnippetLimit {
		return text
	}
	return string(r[:constants.SnippetLimit]) + "..."
}

package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/entity"
)

// WriteCSV writes mismatches as a truth-shaped CSV with the two diagnostic columns.
func WriteCSV(w io.Writer, mismatches []entity.Mismatch) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(constants.ReportColumns); err != nil {
		return err
	}
	for _, m := range mismatches {
		if err := cw.Write(reportRow(m)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// reportRow orders one mismatch as constants.ReportColumns.
func reportRow(m entity.Mismatch) []string {
	return []string{
		m.FileName,
		strconv.Itoa(m.Page),
		m.FieldName,
		m.ExpectedText,
		m.ValidationError,
		m.OCROutputSnippet,
	}
}

package extract

import (
	"context"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/ocr"
)

type OCRAdapter struct {
	e *ocr.Extractor
}

func NewOCRAdapter(e *ocr.Extractor) *OCRAdapter {
	return &OCRAdapter{e: e}
}

func (a *OCRAdapter) Extract(ctx context.Context, pdfPath string, page int) (string, error) {
	return a.e.ExtractPage(ctx, pdfPath, page)
}

func (a *OCRAdapter) Name() string { return constants.EngineLocal }

package extract

import (
	"context"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/docai"
)

// DocAIAdapter sends whole documents; the page argument is ignored.
type DocAIAdapter struct {
	e *docai.Extractor
}

func NewDocAIAdapter(e *docai.Extractor) *DocAIAdapter {
	return &DocAIAdapter{e: e}
}

func (a *DocAIAdapter) Extract(ctx context.Context, pdfPath string, _ int) (string, error) {
	return a.e.Extract(ctx, pdfPath)
}

func (a *DocAIAdapter) Name() string { return constants.EngineDocAI }

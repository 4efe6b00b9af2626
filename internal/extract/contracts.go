package extract

import (
	"context"
)

// TextExtractor turns one page of a PDF into plain text.
//
// Tool-level failures come back as ("", nil); only misuse such as a page
// below 1 or a missing file is an error.
type TextExtractor interface {
	Extract(ctx context.Context, pdfPath string, page int) (string, error)
	// Name identifies the engine in logs and run history.
	Name() string
}

// Func adapts a plain function to TextExtractor.
type Func func(ctx context.Context, pdfPath string, page int) (string, error)

func (f Func) Extract(ctx context.Context, pdfPath string, page int) (string, error) {
	return f(ctx, pdfPath, page)
}

func (Func) Name() string { return "func" }

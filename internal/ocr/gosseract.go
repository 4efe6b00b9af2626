//go:build gosseract

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

type gosseractRecognizer struct {
	cfg Config
}

// NewGosseractRecognizer returns an in-process recognizer backed by libtesseract.
func NewGosseractRecognizer(cfg Config) (Recognizer, error) {
	return &gosseractRecognizer{cfg: cfg}, nil
}

func (g *gosseractRecognizer) Recognize(ctx context.Context, imagePath, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	client := gosseract.NewClient()
	defer client.Close()

	if g.cfg.TessdataDir != "" {
		client.TessdataPrefix = g.cfg.TessdataDir
	}
	if err := client.SetLanguage(strings.Split(g.cfg.Lang, "+")...); err != nil {
		return "", fmt.Errorf("gosseract language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(g.cfg.PSM)); err != nil {
		return "", fmt.Errorf("gosseract psm: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("gosseract image: %w", err)
	}
	return client.Text()
}

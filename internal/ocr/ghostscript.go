package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// rasterize renders exactly one page of pdfPath into workDir and returns the image path.
func (e *Extractor) rasterize(ctx context.Context, workDir, pdfPath string, page int) (string, error) {
	out := filepath.Join(workDir, fmt.Sprintf("page_%d.png", page))
	args := []string{
		"-q", "-dNOPAUSE", "-dBATCH", "-dSAFER",
		"-sDEVICE=png16m",
		fmt.Sprintf("-r%d", e.cfg.DPI),
		fmt.Sprintf("-dFirstPage=%d", page),
		fmt.Sprintf("-dLastPage=%d", page),
		"-sOutputFile=" + out,
		pdfPath,
	}
	if _, errb, err := e.runner.Run(ctx, workDir, e.cfg.Ghostscript, args...); err != nil {
		return "", fmt.Errorf("ghostscript: %w: %s", err, strings.TrimSpace(truncate(string(errb), 512)))
	}
	if _, err := os.Stat(out); err != nil {
		return "", fmt.Errorf("ghostscript produced no image for page %d: %w", page, err)
	}
	return out, nil
}

package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Recognizer reads the text of a rasterized page image.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath, workDir string) (string, error)
}

type tesseractCLI struct {
	cfg    Config
	runner Runner
}

// Recognize runs `tesseract <img> <base> -l <lang> --psm <n>` and reads <base>.txt back.
func (t *tesseractCLI) Recognize(ctx context.Context, imagePath, workDir string) (string, error) {
	base := strings.TrimSuffix(imagePath, filepath.Ext(imagePath))
	args := []string{imagePath, base, "-l", t.cfg.Lang, "--psm", strconv.Itoa(t.cfg.PSM)}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}

	if _, errb, err := t.runner.Run(ctx, workDir, t.cfg.Tesseract, args...); err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(truncate(string(errb), 512)))
	}

	b, err := os.ReadFile(base + ".txt")
	if err != nil {
		return "", fmt.Errorf("read tesseract output: %w", err)
	}
	return string(b), nil
}

package ocr

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/common"
)

type Config struct {
	Ghostscript string // binary name or absolute path; if empty -> "gs"
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string

	Lang string // tesseract language hint, default "eng+kor"
	DPI  int    // rasterization DPI, default 300
	PSM  int    // page segmentation mode, default 4

	TempRoot  string // parent of per-call work dirs; empty -> os.TempDir()
	Normalize bool   // collapse whitespace noise in recognized text
}

// Extractor turns one PDF page into text: Ghostscript rasterizes it, a Recognizer reads it.
type Extractor struct {
	cfg        Config
	runner     Runner
	recognizer Recognizer
	logger     *slog.Logger
}

type Option func(*Extractor)

// WithRunner replaces the os/exec runner.
func WithRunner(r Runner) Option {
	return func(e *Extractor) {
		if r != nil {
			e.runner = r
		}
	}
}

// WithRecognizer replaces the tesseract CLI recognizer.
func WithRecognizer(r Recognizer) Option {
	return func(e *Extractor) {
		if r != nil {
			e.recognizer = r
		}
	}
}

func NewExtractor(cfg Config, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Ghostscript == "" {
		cfg.Ghostscript = "gs"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = constants.DefaultLang
	}
	if cfg.DPI <= 0 {
		cfg.DPI = constants.DefaultDPI
	}
	if cfg.PSM <= 0 {
		cfg.PSM = constants.DefaultPSM
	}
	e := &Extractor{cfg: cfg, logger: logger}
	for _, o := range opts {
		o(e)
	}
	if e.runner == nil {
		e.runner = NewExecRunner(logger)
	}
	if e.recognizer == nil {
		e.recognizer = &tesseractCLI{cfg: cfg, runner: e.runner}
	}
	return e
}

// ExtractPage returns the OCR text of a single 1-based page.
//
// A page below 1 or a missing PDF is an error. Rasterizer or recognizer
// failures are logged and yield an empty string with a nil error.
func (e *Extractor) ExtractPage(ctx context.Context, pdfPath string, page int) (string, error) {
	if page < 1 {
		return "", common.InvalidArgumentErrorf("page must be ≥ 1, got %d", page)
	}
	if _, err := os.Stat(pdfPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", common.NotFoundErrorf("PDF not found: %s", pdfPath)
		}
		return "", fmt.Errorf("stat pdf: %w", err)
	}

	start := time.Now()
	workDir, err := os.MkdirTemp(e.cfg.TempRoot, "ldg-ocr-*")
	if err != nil {
		e.logger.Warn("ocr.workdir.failed", "path", pdfPath, "root", e.cfg.TempRoot, "error", err)
		return "", nil
	}
	defer func(path string) {
		if err := os.RemoveAll(path); err != nil {
			e.logger.Warn("failed to remove temp dir", "dir", path, "error", err)
		}
	}(workDir)

	img, err := e.rasterize(ctx, workDir, pdfPath, page)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		e.logger.Warn("ocr.rasterize.failed", "path", pdfPath, "page", page, "error", err)
		return "", nil
	}

	text, err := e.recognizer.Recognize(ctx, img, workDir)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		e.logger.Warn("ocr.recognize.failed", "path", pdfPath, "page", page, "error", err)
		return "", nil
	}
	if e.cfg.Normalize {
		text = Normalize(text)
	}

	e.logger.Debug("ocr.page.ok",
		"path", pdfPath,
		"page", page,
		"lang", e.cfg.Lang,
		"chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

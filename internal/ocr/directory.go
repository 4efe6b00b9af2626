package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/ldg/constants"
)

type FileResult struct {
	Path    string
	OutPath string
	Chars   int
	Err     string
}

type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
}

// ExtractDirectory OCRs one page of every PDF directly inside inDir and writes
// <stem>.txt files into outDir. Per-file failures are reported, not returned.
func (e *Extractor) ExtractDirectory(ctx context.Context, inDir, outDir string, page int) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(inDir) == "" {
		return nil, DirStats{}, fmt.Errorf("input dir is required")
	}
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, DirStats{}, fmt.Errorf("read dir: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, DirStats{}, fmt.Errorf("create output dir: %w", err)
	}

	var results []FileResult
	var stats DirStats
	for _, d := range entries {
		stats.Scanned++
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") || !constants.IsPDF(d.Name()) {
			continue
		}
		stats.Matched++
		if err := ctx.Err(); err != nil {
			return results, stats, err
		}

		path := filepath.Join(inDir, d.Name())
		e.logger.Info("processing pdf", "path", path, "page", page)
		text, err := e.ExtractPage(ctx, path, page)
		if err != nil {
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			continue
		}

		out := filepath.Join(outDir, strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))+".txt")
		if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			continue
		}
		results = append(results, FileResult{Path: path, OutPath: out, Chars: len(text)})
		stats.Succeeded++
	}
	return results, stats, nil
}

package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/ldg/internal/entity"
)

// Paths selects which reports to write. Empty paths are skipped.
type Paths struct {
	CSV  string
	JSON string
	XLSX string
}

func (p Paths) Empty() bool {
	return p.CSV == "" && p.JSON == "" && p.XLSX == ""
}

// Service writes mismatch reports to disk.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteFiles writes every requested report. A failing format does not stop
// the others; all failures are returned joined.
func (s *Service) WriteFiles(ctx context.Context, mismatches []entity.Mismatch, paths Paths) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var errs []error
	if paths.CSV != "" {
		errs = append(errs, s.write("csv", paths.CSV, len(mismatches), func(w io.Writer) error {
			return WriteCSV(w, mismatches)
		}))
	}
	if paths.JSON != "" {
		errs = append(errs, s.write("json", paths.JSON, len(mismatches), func(w io.Writer) error {
			return WriteJSON(w, mismatches)
		}))
	}
	if paths.XLSX != "" {
		errs = append(errs, s.write("xlsx", paths.XLSX, len(mismatches), func(w io.Writer) error {
			b, err := XLSX(mismatches)
			if err != nil {
				return err
			}
			_, err = w.Write(b)
			return err
		}))
	}
	return errors.Join(errs...)
}

// write renders into memory first so a failed render leaves no partial file.
func (s *Service) write(format, path string, rows int, render func(io.Writer) error) error {
	start := time.Now()
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.logger.Error("export."+format+".failed", "path", path, "error", err)
		return fmt.Errorf("%s report: %w", format, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Error("export."+format+".failed", "path", path, "error", err)
		return fmt.Errorf("%s report: %w", format, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		s.logger.Error("export."+format+".failed", "path", path, "error", err)
		return fmt.Errorf("%s report: %w", format, err)
	}
	s.logger.Info("export."+format+".ok",
		"path", path,
		"rows", rows,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

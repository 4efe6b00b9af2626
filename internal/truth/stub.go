package truth

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/common"
)

// StubFieldName labels the rows GenerateStub writes.
const StubFieldName = "FileNameCheck"

// GenerateStub writes a starter truth CSV with one row per PDF in pdfDir,
// expecting each document to contain its own file stem on page 1.
// It returns the number of data rows written; zero PDFs gives a header-only file.
func GenerateStub(pdfDir, outPath string) (int, error) {
	entries, err := os.ReadDir(pdfDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, common.NotFoundErrorf("PDF directory not found: %s", pdfDir)
		}
		return 0, fmt.Errorf("read pdf dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !constants.IsPDF(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, fmt.Errorf("create truth dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create truth csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(constants.TruthColumns); err != nil {
		return 0, err
	}
	for _, name := range names {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if err := w.Write([]string{name, "1", StubFieldName, stem}); err != nil {
			return 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("write truth csv: %w", err)
	}
	return len(names), f.Close()
}

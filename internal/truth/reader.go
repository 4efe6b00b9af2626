// Package truth reads and generates the truth CSV that drives validation.
package truth

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/common"
	"github.com/joseph-ayodele/ldg/internal/entity"
)

const utf8BOM = "\ufeff"

// Read loads every truth row from path in file order.
//
// Structural problems fail the whole file: a missing file (ErrNotFound),
// a missing required column or an empty file_name/expected_text value
// (ErrValidation). A page cell that is not an integer becomes 1 with
// PageDefaulted set.
func Read(path string) ([]entity.TruthRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.NotFoundErrorf("truth CSV not found: %s", path)
		}
		return nil, fmt.Errorf("open truth csv: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads truth rows from r. See Read.
func Parse(r io.Reader) ([]entity.TruthRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: truth CSV has no header row", common.ErrValidation)
		}
		return nil, fmt.Errorf("read truth header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	v := common.NewValidator()
	var records []entity.TruthRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read truth csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		cell := func(col string) string {
			i := idx[col]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		rec := entity.TruthRecord{
			FileName:     strings.TrimSpace(cell(constants.ColFileName)),
			PageRaw:      cell(constants.ColPage),
			FieldName:    cell(constants.ColFieldName),
			ExpectedText: cell(constants.ColExpectedText),
			Line:         line,
		}
		rec.Page, rec.PageDefaulted = parsePage(rec.PageRaw)

		v.Field(fmt.Sprintf("line %d %s", line, constants.ColFileName), rec.FileName, common.Required)
		v.Field(fmt.Sprintf("line %d %s", line, constants.ColExpectedText), rec.ExpectedText, common.Required)
		records = append(records, rec)
	}
	if err := v.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}

	var missing []string
	for _, col := range constants.TruthColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: truth CSV missing required columns: %s",
			common.ErrValidation, strings.Join(missing, ", "))
	}
	return idx, nil
}

// parsePage returns the page number and whether it had to fall back to 1.
// Non-positive integers pass through unchanged.
func parsePage(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1, true
	}
	return n, false
}

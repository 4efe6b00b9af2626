package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/entity"
)

func sampleMismatches() []entity.Mismatch {
	return []entity.Mismatch{
		{
			TruthRecord:      entity.TruthRecord{FileName: "inv_0001.pdf", Page: 1, FieldName: "InvoiceNumber", ExpectedText: "INV-1234"},
			ValidationError:  constants.ErrTextMismatch,
			OCROutputSnippet: "InvoiceNumber: INV-ABCD <수하인>",
		},
		{
			TruthRecord:     entity.TruthRecord{FileName: "missing.pdf", Page: 2, FieldName: "Total", ExpectedText: "1,200.00"},
			ValidationError: "PDF not found: data/pdf/missing.pdf",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleMismatches()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, constants.ReportColumns, rows[0])
	assert.Equal(t, []string{"inv_0001.pdf", "1", "InvoiceNumber", "INV-1234", "Mismatch", "InvoiceNumber: INV-ABCD <수하인>"}, rows[1])
	assert.Equal(t, []string{"missing.pdf", "2", "Total", "1,200.00", "PDF not found: data/pdf/missing.pdf", ""}, rows[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleMismatches()))

	out := buf.String()
	assert.Contains(t, out, "<수하인>", "non-ASCII and HTML characters are not escaped")
	assert.True(t, strings.HasPrefix(out, "[\n    {"), "indented by four spaces")

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Mismatch", got[0]["validation_error"])
	assert.Equal(t, float64(1), got[0]["page"])
	_, hasSnippet := got[1]["ocr_output_snippet"]
	assert.False(t, hasSnippet)
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestValidateReport(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"valid", `[{"file_name":"a.pdf","page":1,"field_name":"F","expected_text":"X","validation_error":"Mismatch"}]`, false},
		{"missing error", `[{"file_name":"a.pdf","page":1,"field_name":"F","expected_text":"X"}]`, true},
		{"string page", `[{"file_name":"a.pdf","page":"1","field_name":"F","expected_text":"X","validation_error":"Mismatch"}]`, true},
		{"unknown key", `[{"file_name":"a.pdf","page":1,"field_name":"F","expected_text":"X","validation_error":"Mismatch","extra":true}]`, true},
		{"not an array", `{}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReport([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteJSON_RejectsInvalidRecord(t *testing.T) {
	bad := []entity.Mismatch{{TruthRecord: entity.TruthRecord{FileName: "a.pdf", Page: 1, ExpectedText: "X"}}}
	var buf bytes.Buffer
	assert.Error(t, WriteJSON(&buf, bad))
	assert.Zero(t, buf.Len())
}

func TestXLSX(t *testing.T) {
	b, err := XLSX(sampleMismatches())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, constants.ReportColumns, rows[0])
	assert.Equal(t, "inv_0001.pdf", rows[1][0])
	assert.Equal(t, "1", rows[1][1])
	assert.Equal(t, "Mismatch", rows[1][4])
	assert.Equal(t, "PDF not found: data/pdf/missing.pdf", rows[2][4])
}

func TestService_WriteFiles(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		CSV:  filepath.Join(dir, "out", "mismatches.csv"),
		JSON: filepath.Join(dir, "out", "mismatches.json"),
		XLSX: filepath.Join(dir, "xlsx", "mismatches.xlsx"),
	}
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, svc.WriteFiles(context.Background(), sampleMismatches(), paths))
	for _, p := range []string{paths.CSV, paths.JSON, paths.XLSX} {
		st, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, st.Size())
	}
}

func TestService_WriteFiles_SkipsEmptyPaths(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, svc.WriteFiles(context.Background(), sampleMismatches(), Paths{JSON: filepath.Join(dir, "m.json")}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "m.json", entries[0].Name())
	assert.True(t, Paths{}.Empty())
}

func TestService_WriteFiles_JoinsErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := svc.WriteFiles(context.Background(), sampleMismatches(), Paths{
		CSV:  filepath.Join(blocker, "m.csv"),
		JSON: filepath.Join(dir, "m.json"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv report")

	_, statErr := os.Stat(filepath.Join(dir, "m.json"))
	assert.NoError(t, statErr, "json is still written when csv fails")
}

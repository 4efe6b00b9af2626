package truth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/ldg/internal/common"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "truth.csv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRead_OK(t *testing.T) {
	p := writeCSV(t, "file_name,page,field_name,expected_text\n"+
		"inv_0001.pdf,1,InvoiceNumber,INV-1234\n"+
		"multi.pdf,2,Consignee,\"ACME, Inc.\"\n")

	recs, err := Read(p)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "inv_0001.pdf", recs[0].FileName)
	assert.Equal(t, 1, recs[0].Page)
	assert.Equal(t, "InvoiceNumber", recs[0].FieldName)
	assert.Equal(t, "INV-1234", recs[0].ExpectedText)
	assert.Equal(t, 2, recs[0].Line)

	assert.Equal(t, 2, recs[1].Page)
	assert.Equal(t, "ACME, Inc.", recs[1].ExpectedText)
	assert.Equal(t, 3, recs[1].Line)
}

func TestRead_ExtraColumnsAndBOM(t *testing.T) {
	p := writeCSV(t, "\ufefffield_name,notes,expected_text,file_name,page\n"+
		"Total,ignored,42.00,a.pdf,3\n")

	recs, err := Read(p)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a.pdf", recs[0].FileName)
	assert.Equal(t, 3, recs[0].Page)
	assert.Equal(t, "Total", recs[0].FieldName)
	assert.Equal(t, "42.00", recs[0].ExpectedText)
}

func TestRead_PageDefaults(t *testing.T) {
	tests := []struct {
		raw       string
		want      int
		defaulted bool
	}{
		{"2", 2, false},
		{" 5 ", 5, false},
		{"", 1, true},
		{"abc", 1, true},
		{"1.5", 1, true},
		{"0", 0, false},
		{"-3", -3, false},
	}
	for _, tt := range tests {
		t.Run("page="+tt.raw, func(t *testing.T) {
			p := writeCSV(t, "file_name,page,field_name,expected_text\na.pdf,"+tt.raw+",F,X\n")
			recs, err := Read(p)
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, tt.want, recs[0].Page)
			assert.Equal(t, tt.defaulted, recs[0].PageDefaulted)
			assert.Equal(t, tt.raw, recs[0].PageRaw)
		})
	}
}

func TestRead_ShortRowIsPadded(t *testing.T) {
	p := writeCSV(t, "file_name,expected_text,page,field_name\na.pdf,X\n")
	recs, err := Read(p)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].PageDefaulted)
	assert.Equal(t, "", recs[0].FieldName)
}

func TestRead_MissingColumns(t *testing.T) {
	p := writeCSV(t, "file_name,page\na.pdf,1\n")
	_, err := Read(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "expected_text, field_name")
}

func TestRead_EmptyRequiredValue(t *testing.T) {
	p := writeCSV(t, "file_name,page,field_name,expected_text\n"+
		"a.pdf,1,F,ok\n"+
		"b.pdf,1,F,\n")
	_, err := Read(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "line 3 expected_text")
}

func TestRead_EmptyFile(t *testing.T) {
	_, err := Read(writeCSV(t, ""))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRead_HeaderOnly(t *testing.T) {
	recs, err := Read(writeCSV(t, "file_name,page,field_name,expected_text\n"))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader("file_name,page,field_name,expected_text\n\"a.pdf,1,F,X\n"))
	require.Error(t, err)
}

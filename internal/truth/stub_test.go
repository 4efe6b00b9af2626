package truth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/ldg/internal/common"
)

func TestGenerateStub(t *testing.T) {
	pdfDir := t.TempDir()
	for _, name := range []string{"inv_0002.pdf", "inv_0001.pdf", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(pdfDir, name), nil, 0o644))
	}
	out := filepath.Join(t.TempDir(), "truth", "truth_sample.csv")

	n, err := GenerateStub(pdfDir, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "file_name,page,field_name,expected_text\n"+
		"inv_0001.pdf,1,FileNameCheck,inv_0001\n"+
		"inv_0002.pdf,1,FileNameCheck,inv_0002\n", string(b))

	recs, err := Read(out)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "inv_0001", recs[0].ExpectedText)
}

func TestGenerateStub_NoPDFs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "truth.csv")
	n, err := GenerateStub(t.TempDir(), out)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "file_name,page,field_name,expected_text\n", string(b))
}

func TestGenerateStub_MissingDir(t *testing.T) {
	_, err := GenerateStub(filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "t.csv"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

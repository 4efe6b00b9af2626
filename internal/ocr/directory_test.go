package ocr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDirectory(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "text")
	for _, name := range []string{"inv_0001.pdf", "inv_0002.PDF", "notes.txt", ".hidden.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(in, "sub.pdf"), 0o755))

	r := &fakeRunner{text: "OCR TEXT"}
	e, _ := newTestExtractor(t, r)

	results, stats, err := e.ExtractDirectory(context.Background(), in, out, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), stats.Matched)
	assert.Equal(t, uint32(2), stats.Succeeded)
	assert.Equal(t, uint32(0), stats.Failed)
	require.Len(t, results, 2)

	for _, stem := range []string{"inv_0001", "inv_0002"} {
		b, err := os.ReadFile(filepath.Join(out, stem+".txt"))
		require.NoError(t, err)
		assert.Equal(t, "OCR TEXT", string(b))
	}
}

func TestExtractDirectory_InvalidPageCountsAsFailure(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.pdf"), nil, 0o644))

	e, _ := newTestExtractor(t, &fakeRunner{})
	results, stats, err := e.ExtractDirectory(context.Background(), in, t.TempDir(), 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), stats.Failed)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Err, "page must be ≥ 1")
}

func TestExtractDirectory_MissingInput(t *testing.T) {
	e, _ := newTestExtractor(t, &fakeRunner{})
	_, _, err := e.ExtractDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir(), 1)
	require.Error(t, err)
}

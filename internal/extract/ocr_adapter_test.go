package extract

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/ldg/internal/common"
	"github.com/joseph-ayodele/ldg/internal/ocr"
)

type textRecognizer string

func (t textRecognizer) Recognize(context.Context, string, string) (string, error) {
	return string(t), nil
}

// imageRunner records the requested pages and fakes Ghostscript output.
type imageRunner struct{ pages []string }

func (r *imageRunner) Run(_ context.Context, _, _ string, args ...string) ([]byte, []byte, error) {
	var out string
	for _, a := range args {
		if v, ok := strings.CutPrefix(a, "-dFirstPage="); ok {
			r.pages = append(r.pages, v)
		}
		if v, ok := strings.CutPrefix(a, "-sOutputFile="); ok {
			out = v
		}
	}
	return nil, nil, os.WriteFile(out, nil, 0o644)
}

func TestOCRAdapter(t *testing.T) {
	pdf := filepath.Join(t.TempDir(), "a.pdf")
	require.NoError(t, os.WriteFile(pdf, nil, 0o644))

	r := &imageRunner{}
	e := ocr.NewExtractor(ocr.Config{TempRoot: t.TempDir()}, slog.New(slog.NewTextHandler(io.Discard, nil)),
		ocr.WithRunner(r), ocr.WithRecognizer(textRecognizer("SHIPPER")))

	var te TextExtractor = NewOCRAdapter(e)
	assert.Equal(t, "local", te.Name())

	_, err := te.Extract(context.Background(), pdf, 0)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Empty(t, r.pages)

	text, err := te.Extract(context.Background(), pdf, 3)
	require.NoError(t, err)
	assert.Equal(t, "SHIPPER", text)
	assert.Equal(t, []string{"3"}, r.pages)
}

func TestFunc(t *testing.T) {
	var got []int
	var te TextExtractor = Func(func(_ context.Context, _ string, page int) (string, error) {
		got = append(got, page)
		return "x", nil
	})
	text, err := te.Extract(context.Background(), "p.pdf", 3)
	require.NoError(t, err)
	assert.Equal(t, "x", text)
	assert.Equal(t, []int{3}, got)
	assert.Equal(t, "func", te.Name())
}

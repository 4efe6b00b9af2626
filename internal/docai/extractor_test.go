package docai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/ldg/internal/common"
)

type fakeProcessor struct {
	reqs   []*documentaipb.ProcessRequest
	resp   *documentaipb.ProcessResponse
	err    error
	closed bool
}

func (f *fakeProcessor) ProcessDocument(_ context.Context, req *documentaipb.ProcessRequest) (*documentaipb.ProcessResponse, error) {
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}

func (f *fakeProcessor) Close() error {
	f.closed = true
	return nil
}

var testCfg = Config{ProjectID: "proj", Location: "eu", ProcessorID: "abc123"}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePDF(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "inv_0001.pdf")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestNew_MissingConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		missing string
	}{
		{"no project", Config{Location: "us", ProcessorID: "p"}, "project_id"},
		{"no location", Config{ProjectID: "x", ProcessorID: "p"}, "location"},
		{"no processor", Config{ProjectID: "x", Location: "us"}, "processor_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakeProcessor{}
			_, err := New(context.Background(), tt.cfg, quietLogger(), withProcessor(fp))
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrCloudConfig)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestExtract_OK(t *testing.T) {
	fp := &fakeProcessor{resp: &documentaipb.ProcessResponse{
		Document: &documentaipb.Document{Text: "INVOICE INV-0001\nTotal 42.00"},
	}}
	e, err := New(context.Background(), testCfg, quietLogger(), withProcessor(fp))
	require.NoError(t, err)
	defer e.Close()

	text, err := e.Extract(context.Background(), writePDF(t, "%PDF-1.4 data"))
	require.NoError(t, err)
	assert.Equal(t, "INVOICE INV-0001\nTotal 42.00", text)

	require.Len(t, fp.reqs, 1)
	req := fp.reqs[0]
	assert.Equal(t, "projects/proj/locations/eu/processors/abc123", req.GetName())
	raw := req.GetRawDocument()
	require.NotNil(t, raw)
	assert.Equal(t, []byte("%PDF-1.4 data"), raw.GetContent())
	assert.Equal(t, "application/pdf", raw.GetMimeType())
}

func TestExtract_APIErrorsDegradeToEmpty(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"grpc status", status.Error(codes.PermissionDenied, "processor access denied")},
		{"quota", status.Error(codes.ResourceExhausted, "quota exceeded")},
		{"unexpected", errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakeProcessor{err: tt.err}
			e, err := New(context.Background(), testCfg, quietLogger(), withProcessor(fp))
			require.NoError(t, err)

			text, err := e.Extract(context.Background(), writePDF(t, "x"))
			require.NoError(t, err)
			assert.Equal(t, "", text)
			assert.Len(t, fp.reqs, 1)
		})
	}
}

func TestExtract_MissingFile(t *testing.T) {
	fp := &fakeProcessor{}
	e, err := New(context.Background(), testCfg, quietLogger(), withProcessor(fp))
	require.NoError(t, err)

	_, err = e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Empty(t, fp.reqs)
}

func TestExtract_UnreadableFileDegradesToEmpty(t *testing.T) {
	fp := &fakeProcessor{}
	e, err := New(context.Background(), testCfg, quietLogger(), withProcessor(fp))
	require.NoError(t, err)

	text, err := e.Extract(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "", text)
	assert.Empty(t, fp.reqs)
}

func TestExtract_DebugDump(t *testing.T) {
	debugDir := filepath.Join(t.TempDir(), "debug")
	fp := &fakeProcessor{resp: &documentaipb.ProcessResponse{
		Document: &documentaipb.Document{Text: "hello"},
	}}
	cfg := testCfg
	cfg.DebugDir = debugDir
	e, err := New(context.Background(), cfg, quietLogger(), withProcessor(fp))
	require.NoError(t, err)

	_, err = e.Extract(context.Background(), writePDF(t, "x"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(debugDir, "inv_0001.docai.json"))
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "hello", got["text"])
}

func TestClose(t *testing.T) {
	fp := &fakeProcessor{}
	e, err := New(context.Background(), testCfg, quietLogger(), withProcessor(fp))
	require.NoError(t, err)
	require.NoError(t, e.Close())
	assert.True(t, fp.closed)
}

func TestFromCommon(t *testing.T) {
	cfg := FromCommon(common.DocAIConfig{ProjectID: "p", Location: "us", ProcessorID: "id", MIMEType: "image/tiff"})
	assert.Equal(t, "projects/p/locations/us/processors/id", cfg.ProcessorName())
	assert.Equal(t, "image/tiff", cfg.MIMEType)
	assert.Equal(t, "us-documentai.googleapis.com:443", Endpoint(cfg.Location))
}

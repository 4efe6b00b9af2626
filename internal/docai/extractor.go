// Package docai extracts document text with a Google Document AI processor.
package docai

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/common"
)

type Config struct {
	ProjectID       string
	Location        string
	ProcessorID     string
	MIMEType        string // default "application/pdf"
	CredentialsFile string // empty -> application default credentials

	// DebugDir, when set, receives one protojson dump of every returned Document.
	DebugDir string
}

// FromCommon maps the env/YAML cloud settings onto an extractor config.
func FromCommon(c common.DocAIConfig) Config {
	return Config{
		ProjectID:       c.ProjectID,
		Location:        c.Location,
		ProcessorID:     c.ProcessorID,
		MIMEType:        c.MIMEType,
		CredentialsFile: c.CredentialsFile,
	}
}

type Extractor struct {
	cfg    Config
	client processor
	logger *slog.Logger
}

type Option func(*Extractor)

func withProcessor(p processor) Option {
	return func(e *Extractor) { e.client = p }
}

// New validates cfg and connects to the regional Document AI endpoint.
// Missing identifiers yield common.ErrCloudConfig; a client that cannot be
// built yields common.ErrCloudClient.
func New(ctx context.Context, cfg Config, logger *slog.Logger, opts ...Option) (*Extractor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MIMEType == "" {
		cfg.MIMEType = constants.DefaultMIMEType
	}
	cc := common.DocAIConfig{ProjectID: cfg.ProjectID, Location: cfg.Location, ProcessorID: cfg.ProcessorID}
	if err := cc.Validate(); err != nil {
		return nil, err
	}

	e := &Extractor{cfg: cfg, logger: logger}
	for _, o := range opts {
		o(e)
	}
	if e.client == nil {
		p, err := dialProcessor(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrCloudClient, err)
		}
		e.client = p
	}
	logger.Info("docai.client.ready", "processor", cfg.ProcessorName(), "endpoint", Endpoint(cfg.Location))
	return e, nil
}

func (e *Extractor) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

// Extract sends the whole file to the processor and returns Document.text.
//
// A missing file is an error. API failures are logged and yield "" with a
// nil error, so one bad document never aborts a validation run.
func (e *Extractor) Extract(ctx context.Context, pdfPath string) (string, error) {
	content, err := os.ReadFile(pdfPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", common.NotFoundErrorf("PDF not found: %s", pdfPath)
		}
		e.logger.Error("docai.read.failed", "path", pdfPath, "error", err)
		return "", nil
	}

	start := time.Now()
	req := &documentaipb.ProcessRequest{
		Name: e.cfg.ProcessorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: e.cfg.MIMEType,
			},
		},
		SkipHumanReview: true,
	}

	resp, err := e.client.ProcessDocument(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if st, ok := status.FromError(err); ok {
			e.logger.Warn("docai.process.failed",
				"path", pdfPath,
				"code", st.Code().String(),
				"message", st.Message(),
			)
		} else {
			e.logger.Error("docai.process.error", "path", pdfPath, "error", err)
		}
		return "", nil
	}

	doc := resp.GetDocument()
	if e.cfg.DebugDir != "" {
		e.dump(pdfPath, doc)
	}
	text := doc.GetText()
	e.logger.Debug("docai.process.ok",
		"path", pdfPath,
		"pages", len(doc.GetPages()),
		"chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// dump writes doc as <DebugDir>/<stem>.docai.json. Failures are only logged.
func (e *Extractor) dump(pdfPath string, doc *documentaipb.Document) {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
	if err != nil {
		e.logger.Warn("docai.dump.failed", "path", pdfPath, "error", err)
		return
	}
	if err := os.MkdirAll(e.cfg.DebugDir, 0o755); err != nil {
		e.logger.Warn("docai.dump.failed", "path", pdfPath, "error", err)
		return
	}
	base := filepath.Base(pdfPath)
	out := filepath.Join(e.cfg.DebugDir, strings.TrimSuffix(base, filepath.Ext(base))+".docai.json")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		e.logger.Warn("docai.dump.failed", "path", pdfPath, "error", err)
		return
	}
	e.logger.Debug("docai.dump.ok", "out", out)
}

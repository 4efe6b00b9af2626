package docai

import (
	"context"
	"fmt"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// processor is the slice of the Document AI client the extractor needs.
type processor interface {
	ProcessDocument(ctx context.Context, req *documentaipb.ProcessRequest) (*documentaipb.ProcessResponse, error)
	Close() error
}

type sdkProcessor struct {
	client *documentai.DocumentProcessorClient
}

func (p sdkProcessor) ProcessDocument(ctx context.Context, req *documentaipb.ProcessRequest) (*documentaipb.ProcessResponse, error) {
	return p.client.ProcessDocument(ctx, req)
}

func (p sdkProcessor) Close() error {
	return p.client.Close()
}

// Endpoint is the regional Document AI gRPC endpoint for location.
func Endpoint(location string) string {
	return fmt.Sprintf("%s-documentai.googleapis.com:443", location)
}

// ProcessorName is the full resource name of the configured processor.
func (c Config) ProcessorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, c.ProcessorID)
}

func dialProcessor(ctx context.Context, cfg Config) (processor, error) {
	opts := []option.ClientOption{option.WithEndpoint(Endpoint(cfg.Location))}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sdkProcessor{client: client}, nil
}

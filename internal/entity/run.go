package entity

import (
	"time"

	"github.com/google/uuid"
)

// RunSummary represents a validation run for data transfer between layers.
type RunSummary struct {
	ID           uuid.UUID  `json:"id"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	PDFDir       string     `json:"pdf_dir"`
	TruthPath    string     `json:"truth_path"`
	Extractor    string     `json:"extractor"`
	TotalRows    int        `json:"total_rows"`
	Extractions  int        `json:"extractions"`
	Mismatches   int        `json:"mismatches"`
	Status       string     `json:"status"`
	ErrorMessage *string    `json:"error_message,omitempty"`
}

package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/ldg/internal/entity"
)

//go:embed mismatch_report.schema.json
var reportSchemaJSON []byte

var (
	reportSchemaOnce sync.Once
	reportSchema     *jsonschema.Schema
	reportSchemaErr  error
)

func compiledReportSchema() (*jsonschema.Schema, error) {
	reportSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("mismatch_report.schema.json", bytes.NewReader(reportSchemaJSON)); err != nil {
			reportSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		reportSchema, reportSchemaErr = compiler.Compile("mismatch_report.schema.json")
		if reportSchemaErr != nil {
			reportSchemaErr = fmt.Errorf("compile schema: %w", reportSchemaErr)
		}
	})
	return reportSchema, reportSchemaErr
}

// ValidateReport checks an encoded mismatch report against the embedded schema.
func ValidateReport(data []byte) error {
	schema, err := compiledReportSchema()
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("unmarshal report: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("report does not match schema: %w", err)
	}
	return nil
}

// WriteJSON writes mismatches as an indented JSON array. Non-ASCII text is
// written as-is. The document is schema-checked before anything is written.
func WriteJSON(w io.Writer, mismatches []entity.Mismatch) error {
	if mismatches == nil {
		mismatches = []entity.Mismatch{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(mismatches); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := ValidateReport(buf.Bytes()); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

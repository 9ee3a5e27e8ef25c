package models

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed report_schema.json
var reportSchemaJSON []byte

const reportSchemaURL = "report_schema.json"

// ValidateReport checks a report against the embedded JSON schema.
func ValidateReport(report *AnalysisReport) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(reportSchemaJSON))
	if err != nil {
		return fmt.Errorf("failed to parse report schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(reportSchemaURL, doc); err != nil {
		return fmt.Errorf("failed to register report schema: %w", err)
	}
	schema, err := compiler.Compile(reportSchemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile report schema: %w", err)
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to reparse report: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("report does not match schema: %w", err)
	}
	return nil
}

// MarshalReport serializes a report with two-space indentation. The output
// is byte-identical across runs for the same input tree.
func MarshalReport(report *AnalysisReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

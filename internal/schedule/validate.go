package schedule

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed record.schema.json
var recordSchemaJSON []byte

const recordSchemaURL = "https://ganttboard.local/record.schema.json"

var (
	recordSchemaOnce sync.Once
	recordSchema     *jsonschema.Schema
	recordSchemaErr  error
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // field path, e.g. "tasks[2].end_date"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
}

// ErrZeroDate reports a record without a start or end date.
var ErrZeroDate = errors.New("date is required")

func compiledRecordSchema() (*jsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(recordSchemaURL, bytes.NewReader(recordSchemaJSON)); err != nil {
			recordSchemaErr = fmt.Errorf("add record schema: %w", err)
			return
		}
		recordSchema, recordSchemaErr = compiler.Compile(recordSchemaURL)
		if recordSchemaErr != nil {
			recordSchemaErr = fmt.Errorf("compile record schema: %w", recordSchemaErr)
		}
	})
	return recordSchema, recordSchemaErr
}

// ValidateRecord checks one record against the record schema. A non-nil
// result lists every violation; nil means the record is valid.
func ValidateRecord(r Record) []error {
	result := &ValidationResult{Valid: true}
	validateRecord(result, r, "")
	return result.Errors
}

// Validate checks every record in the table.
func (t *Table) Validate() *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}
	for i, r := range t.Records {
		validateRecord(result, r, fmt.Sprintf("tasks[%d]", i))
	}
	result.Valid = len(result.Errors) == 0
	return result
}

func validateRecord(result *ValidationResult, r Record, prefix string) {
	schema, err := compiledRecordSchema()
	if err != nil {
		result.Errors = append(result.Errors, err)
		return
	}

	if r.Start.IsZero() {
		result.Errors = append(result.Errors, &ValidationError{Path: joinPath(prefix, "start_date"), Err: ErrZeroDate})
	}
	if r.End.IsZero() {
		result.Errors = append(result.Errors, &ValidationError{Path: joinPath(prefix, "end_date"), Err: ErrZeroDate})
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: ends before it starts", joinPath(prefix, "end_date")))
	}

	data, err := json.Marshal(r)
	if err != nil {
		result.Errors = append(result.Errors, &ValidationError{
			Path: prefix,
			Err:  fmt.Errorf("failed to marshal record for validation: %w", err),
		})
		return
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		result.Errors = append(result.Errors, &ValidationError{
			Path: prefix,
			Err:  fmt.Errorf("failed to unmarshal record for validation: %w", err),
		})
		return
	}

	if err := schema.Validate(obj); err != nil {
		appendSchemaErrors(result, err, prefix)
	}
	result.Valid = len(result.Errors) == 0
}

func appendSchemaErrors(result *ValidationResult, err error, prefix string) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve, prefix)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError, prefix string) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: joinPath(prefix, jsonPointerToPath(err.InstanceLocation)),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause, prefix)
	}
}

func joinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	case strings.HasPrefix(path, "["):
		return prefix + path
	}
	return prefix + "." + path
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}

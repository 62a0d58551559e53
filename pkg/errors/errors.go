package errors

import (
	"fmt"
)

// ParseError represents a configuration file that could not be read or decoded.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ColorParseError reports color input that could not be understood.
type ColorParseError struct {
	Input string
	Err   error
}

// NewColorParseError constructs a ColorParseError for the raw input.
func NewColorParseError(input string, err error) error {
	return &ColorParseError{Input: input, Err: err}
}

func (e *ColorParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("color error: cannot parse %q: %v", e.Input, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ColorParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SchemaError indicates a request against a target schema that cannot serve it.
type SchemaError struct {
	Target string
	Err    error
}

// NewSchemaError constructs a SchemaError for the given target.
func NewSchemaError(target string, err error) error {
	return &SchemaError{Target: target, Err: err}
}

func (e *SchemaError) Error() string {
	if e == nil {
		return ""
	}
	if e.Target != "" {
		return fmt.Sprintf("schema error [%s]: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *SchemaError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// GenerationError represents a palette generation run that gave up.
type GenerationError struct {
	Mode     string
	Attempts int
	Err      error
}

// NewGenerationError constructs a GenerationError.
func NewGenerationError(mode string, attempts int, err error) error {
	return &GenerationError{Mode: mode, Attempts: attempts, Err: err}
}

func (e *GenerationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("generation error [%s] after %d attempts: %v", e.Mode, e.Attempts, e.Err)
}

// Unwrap exposes the root error.
func (e *GenerationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExportError indicates a failed exchange with the render service.
type ExportError struct {
	Op     string
	Status int
	Err    error
}

// NewExportError constructs an ExportError. Status is zero when no response was received.
func NewExportError(op string, status int, err error) error {
	return &ExportError{Op: op, Status: status, Err: err}
}

func (e *ExportError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status != 0 {
		return fmt.Sprintf("export error: %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("export error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ExportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

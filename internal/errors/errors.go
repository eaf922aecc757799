package errors

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by AppError and matched with errors.Is.
var (
	ErrEmptyInput      = errors.New("empty JSON document")
	ErrInvalidJSON     = errors.New("malformed JSON")
	ErrMultipleJSON    = errors.New("more than one JSON value at the root")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrNestedArray     = errors.New("arrays of arrays are not supported")
	ErrUnknownBackend  = errors.New("unknown parser backend")
)

// ErrorType names the pipeline stage that failed.
type ErrorType string

const (
	ErrorTypeInput    ErrorType = "input"
	ErrorTypeParsing  ErrorType = "parsing"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeGenerate ErrorType = "generate"
	ErrorTypeOutput   ErrorType = "output"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// AppError carries the failing stage, a message for the user and the cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError of the same Type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to reading input
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to loading configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewGenerateError creates a new error related to assertion generation
func NewGenerateError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeGenerate,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to writing output
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// categoryLabels prefixes AppError messages shown on the command line.
var categoryLabels = map[ErrorType]string{
	ErrorTypeInput:    "Input error",
	ErrorTypeParsing:  "JSON parsing error",
	ErrorTypeConfig:   "Configuration error",
	ErrorTypeGenerate: "Assertion generation error",
	ErrorTypeOutput:   "Output error",
}

// sentinelHints explains bare sentinels that reach the command line unwrapped.
var sentinelHints = []struct {
	err  error
	hint string
}{
	{ErrEmptyInput, "nothing to assert on: the JSON document is empty"},
	{ErrInvalidJSON, "the document is not valid JSON, so no assertions were written"},
	{ErrMultipleJSON, "the document holds more than one JSON value; assertions need a single root"},
	{ErrFileNotFound, "the JSON file does not exist; pass a path or - for stdin"},
	{ErrFileEmpty, "the JSON file is empty"},
	{ErrInvalidFilePath, "the input path is not a readable JSON file"},
	{ErrNestedArray, "arrays of arrays are disabled; set arrays.nested to recurse to allow them"},
	{ErrUnknownBackend, "unknown parser backend; use jsontext or orderedmap"},
}

// UserFriendlyError returns the message printed to stderr for err.
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		label, ok := categoryLabels[appErr.Type]
		if !ok {
			label = "Error"
		}
		return fmt.Sprintf("%s: %s", label, appErr.Message)
	}

	for _, h := range sentinelHints {
		if errors.Is(err, h.err) {
			return "Error: " + h.hint
		}
	}

	return fmt.Sprintf("Error: %v", err)
}

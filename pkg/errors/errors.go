package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryFile          ErrorCategory = "file"
	CategoryParse         ErrorCategory = "parse"
	CategoryValidation    ErrorCategory = "validation"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryResolution    ErrorCategory = "resolution"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFilePermission ErrorCode = "file_permission"
	CodeFileCorrupted  ErrorCode = "file_corrupted"
	CodeDirectoryError ErrorCode = "directory_error"

	// Parse errors
	CodeInvalidWorkbook ErrorCode = "invalid_workbook"
	CodeMissingSheet    ErrorCode = "missing_sheet"
	CodeMissingColumn   ErrorCode = "missing_column"
	CodeInvalidData     ErrorCode = "invalid_data"

	// Validation errors
	CodeInvalidDate  ErrorCode = "invalid_date"
	CodeMissingField ErrorCode = "missing_field"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeMissingConfig ErrorCode = "missing_config"

	// Resolution errors
	CodeAliasWriteFailed ErrorCode = "alias_write_failed"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// JournalError is the base error type for all application errors
type JournalError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *JournalError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *JournalError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns an appropriate exit code for the error
func (e *JournalError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryParse, CategoryValidation:
		return 3
	case CategoryConfiguration:
		return 4
	case CategoryResolution, CategoryInternal:
		return 5
	default:
		return 1
	}
}

// WithContext adds context information to the error
func (e *JournalError) WithContext(key string, value interface{}) *JournalError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *JournalError) WithSuggestion(suggestion string) *JournalError {
	e.Suggestion = suggestion
	return e
}

// New creates a new JournalError
func New(category ErrorCategory, code ErrorCode, message string) *JournalError {
	return &JournalError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with JournalError context
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *JournalError {
	if err == nil {
		return nil
	}

	return &JournalError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// stackTracer interface for extracting stack traces
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// newOrWrap keeps the constructors below tolerant of a nil cause
func newOrWrap(err error, category ErrorCategory, code ErrorCode, message string) *JournalError {
	if err != nil {
		return Wrap(err, category, code, message)
	}
	return New(category, code, message)
}

// Specific error constructors

// FileError creates a file-related error
func FileError(code ErrorCode, path string, err error) *JournalError {
	var message string
	var suggestion string

	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check if the file path is correct and the file exists"
	case CodeFilePermission:
		message = fmt.Sprintf("permission denied accessing file: %s", path)
		suggestion = "check file permissions and ensure you have read access"
	case CodeFileCorrupted:
		message = fmt.Sprintf("file appears to be corrupted: %s", path)
		suggestion = "verify the file integrity and try using a backup copy"
	case CodeDirectoryError:
		message = fmt.Sprintf("directory error: %s", path)
		suggestion = "ensure the directory exists and is accessible"
	default:
		message = fmt.Sprintf("file error: %s", path)
		suggestion = "check the file and try again"
	}

	return newOrWrap(err, CategoryFile, code, message).
		WithSuggestion(suggestion).
		WithContext("file_path", path)
}

// MissingColumnError reports a required logical column absent from one sheet.
// Loading that sheet aborts; the caller decides whether the whole load fails.
func MissingColumnError(sheet, column string) *JournalError {
	return New(CategoryParse, CodeMissingColumn,
		fmt.Sprintf("sheet %q has no column %q (or similar)", sheet, column)).
		WithSuggestion("check the sheet headers; exact and substring header matches are both accepted").
		WithContext("sheet", sheet).
		WithContext("column", column)
}

// MissingSheetError reports a requested sheet absent from the workbook
func MissingSheetError(sheet string, err error) *JournalError {
	return newOrWrap(err, CategoryParse, CodeMissingSheet,
		fmt.Sprintf("workbook has no sheet %q", sheet)).
		WithSuggestion("check the sheet names in the journal workbook").
		WithContext("sheet", sheet)
}

// WorkbookError creates a workbook parsing error
func WorkbookError(path string, err error) *JournalError {
	return newOrWrap(err, CategoryParse, CodeInvalidWorkbook,
		fmt.Sprintf("cannot read workbook: %s", path)).
		WithSuggestion("verify the file is a valid .xlsx workbook").
		WithContext("file_path", path)
}

// ValidationError creates a validation-related error
func ValidationError(code ErrorCode, field string, value interface{}, err error) *JournalError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidDate:
		message = fmt.Sprintf("invalid date in field '%s': %v", field, value)
		suggestion = "use date format DD.MM.YYYY or YYYY-MM-DD"
	case CodeMissingField:
		message = fmt.Sprintf("required field '%s' is missing or empty", field)
		suggestion = "provide a value for this required field"
	default:
		message = fmt.Sprintf("validation error in field '%s': %v", field, value)
		suggestion = "check the field value and format"
	}

	return newOrWrap(err, CategoryValidation, code, message).
		WithSuggestion(suggestion).
		WithContext("field", field).
		WithContext("value", value)
}

// ConfigurationError creates a configuration-related error
func ConfigurationError(code ErrorCode, setting string, value interface{}, err error) *JournalError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidConfig:
		message = fmt.Sprintf("invalid configuration for '%s': %v", setting, value)
		suggestion = "check the configuration documentation for valid values"
	case CodeMissingConfig:
		message = fmt.Sprintf("missing required configuration: %s", setting)
		suggestion = "provide this configuration setting or use a config file"
	default:
		message = fmt.Sprintf("configuration error: %s", setting)
		suggestion = "check your configuration and try again"
	}

	return newOrWrap(err, CategoryConfiguration, code, message).
		WithSuggestion(suggestion).
		WithContext("setting", setting).
		WithContext("value", value)
}

// ResolutionError creates an alias-persistence error
func ResolutionError(code ErrorCode, path string, err error) *JournalError {
	return newOrWrap(err, CategoryResolution, code,
		fmt.Sprintf("cannot persist aliases to %s", path)).
		WithSuggestion("check that the alias file path is writable").
		WithContext("file_path", path)
}

// InternalError creates an internal error
func InternalError(operation string, err error) *JournalError {
	return newOrWrap(err, CategoryInternal, CodeUnexpectedError,
		fmt.Sprintf("unexpected error during %s", operation)).
		WithSuggestion("this is likely a bug - please report it with the error details").
		WithContext("operation", operation)
}

// ErrorSummary provides a summary of multiple errors
type ErrorSummary struct {
	Total      int                   `json:"total"`
	ByCategory map[ErrorCategory]int `json:"by_category"`
	ByCode     map[ErrorCode]int     `json:"by_code"`
	Errors     []*JournalError       `json:"errors"`
}

// NewErrorSummary creates a new error summary
func NewErrorSummary(errs []*JournalError) *ErrorSummary {
	summary := &ErrorSummary{
		Total:      len(errs),
		ByCategory: make(map[ErrorCategory]int),
		ByCode:     make(map[ErrorCode]int),
		Errors:     errs,
	}

	for _, err := range errs {
		summary.ByCategory[err.Category]++
		summary.ByCode[err.Code]++
	}

	return summary
}

// Error returns a formatted error message for the summary
func (es *ErrorSummary) Error() string {
	if es.Total == 0 {
		return "no errors"
	}

	if es.Total == 1 {
		return es.Errors[0].Error()
	}

	var categories []string
	for category, count := range es.ByCategory {
		categories = append(categories, fmt.Sprintf("%s: %d", category, count))
	}

	return fmt.Sprintf("%d errors occurred (%s)", es.Total, strings.Join(categories, ", "))
}

// HasCode checks if the summary contains errors with the given code
func (es *ErrorSummary) HasCode(code ErrorCode) bool {
	count, exists := es.ByCode[code]
	return exists && count > 0
}

// Utility functions

// IsJournalError checks if an error is a JournalError
func IsJournalError(err error) bool {
	_, ok := err.(*JournalError)
	return ok
}

// AsJournalError extracts a JournalError from an error chain
func AsJournalError(err error) (*JournalError, bool) {
	var journalErr *JournalError
	if errors.As(err, &journalErr) {
		return journalErr, true
	}
	return nil, false
}

// IsMissingColumn reports whether err is a missing-column sheet error
func IsMissingColumn(err error) bool {
	if journalErr, ok := AsJournalError(err); ok {
		return journalErr.Code == CodeMissingColumn
	}
	return false
}

package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryCompile  Category = "compile"
	CategoryStyle    Category = "style"
	CategoryRuntime  Category = "runtime"
	CategoryProtocol Category = "protocol"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// VolkiError is a structured error with source location, suggestions, and documentation.
type VolkiError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (compile, style, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source code location where the error occurred.
	Location *Location

	// Context contains surrounding source code lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VolkiError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VolkiError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds source location to the error.
func (e *VolkiError) WithLocation(file string, line, column int) *VolkiError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *VolkiError) WithSuggestion(s string) *VolkiError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *VolkiError) WithExample(ex string) *VolkiError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *VolkiError) WithDetail(d string) *VolkiError {
	e.Detail = d
	return e
}

// WithMessage replaces the template message with a specific one.
func (e *VolkiError) WithMessage(format string, args ...any) *VolkiError {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// WithContext adds custom context lines to the error.
func (e *VolkiError) WithContext(lines []string) *VolkiError {
	e.Context = lines
	return e
}

// Wrap wraps another error.
func (e *VolkiError) Wrap(err error) *VolkiError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a VolkiError from a registered error code.
func New(code string) *VolkiError {
	template, ok := registry[code]
	if !ok {
		return &VolkiError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VolkiError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new VolkiError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VolkiError {
	return &VolkiError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a VolkiError.
func FromError(err error, code string) *VolkiError {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*VolkiError); ok {
		return ve
	}
	return New(code).Wrap(err)
}

// IsCategory reports whether err is a VolkiError of the given category.
func IsCategory(err error, cat Category) bool {
	ve, ok := err.(*VolkiError)
	return ok && ve.Category == cat
}

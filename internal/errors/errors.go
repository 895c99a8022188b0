package errors

import (
	"errors"
	"fmt"
)

// Error is a failure to load keywords, configuration or source text.
// Cause and Action are shown to the user next to Message.
type Error struct {
	Code       string // e.g. KEYWORDS_NOT_FOUND
	Message    string
	Cause      string
	Action     string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func New(code, message, cause, action string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
		Action:  action,
	}
}

// Wrap is New with err attached as the underlying error.
func Wrap(err error, code, message, cause, action string) *Error {
	e := New(code, message, cause, action)
	e.Underlying = err
	return e
}

const (
	ErrCodeKeywordsNotFound   = "KEYWORDS_NOT_FOUND"
	ErrCodeKeywordsReadError  = "KEYWORDS_READ_ERROR"
	ErrCodeKeywordsWriteError = "KEYWORDS_WRITE_ERROR"

	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigParseError = "CONFIG_PARSE_ERROR"
	ErrCodeConfigValidation = "CONFIG_VALIDATION_ERROR"

	ErrCodeSourceReadError = "SOURCE_READ_ERROR"
	ErrCodeOutputError     = "OUTPUT_ERROR"
)

func ConfigNotFound(path string) *Error {
	return New(
		ErrCodeConfigNotFound,
		fmt.Sprintf("Configuration file not found: %s", path),
		"The specified configuration file does not exist",
		"Check the path given with --config",
	)
}

func ConfigParseError(path string, err error) *Error {
	return Wrap(
		err,
		ErrCodeConfigParseError,
		fmt.Sprintf("Failed to parse configuration file: %s", path),
		"Invalid YAML syntax, structure, or unknown fields (check for typos)",
		"Review the configuration file syntax and fix any errors",
	)
}

func KeywordsNotFound(path string) *Error {
	return New(
		ErrCodeKeywordsNotFound,
		fmt.Sprintf("Keyword list not found: %s", path),
		"The keyword file does not exist",
		"Create the file (one keyword per line) or set create_keywords: true",
	)
}

func SourceReadError(path string, err error) *Error {
	return Wrap(
		err,
		ErrCodeSourceReadError,
		fmt.Sprintf("Failed to read source: %s", path),
		"The file does not exist or is not readable",
		"Check the path and file permissions",
	)
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// As is errors.As, re-exported so callers need not import both packages.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

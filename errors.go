package reviewlex

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by the loaders and the analysis run.
var (
	// ErrResourceNotFound reports that a required input path does not exist.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrDecode reports input bytes that are not valid in the expected encoding.
	ErrDecode = errors.New("decode error")

	// ErrParse reports input that does not match the expected structure.
	ErrParse = errors.New("parse error")

	// ErrConfiguration reports a missing or invalid configuration value.
	ErrConfiguration = errors.New("configuration error")
)

// ResourceError ties a failure to the resource that caused it.
type ResourceError struct {
	Path string // File the error refers to
	Line int    // 1-based line or row, 0 when not applicable
	Err  error  // One of the sentinel errors, possibly wrapping a cause
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error so errors.Is matches the sentinels.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

func resourceErr(path string, line int, kind error, cause error) error {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %v", kind, cause)
	}
	return &ResourceError{Path: path, Line: line, Err: err}
}

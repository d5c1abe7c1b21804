package font

import "fmt"

// InvalidError reports a structural violation of the WOFF2 format: truncated
// input, a bad magic number, an out-of-range table index, a compressed-size
// mismatch, and so on. It is always fatal to the decode.
type InvalidError struct {
	Reason string
	Err    error // optional wrapped cause
}

func (e *InvalidError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid WOFF2 file: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid WOFF2 file: %s", e.Reason)
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

func invalidf(format string, args ...interface{}) *InvalidError {
	return &InvalidError{Reason: fmt.Sprintf(format, args...)}
}

func invalidErr(reason string, err error) *InvalidError {
	return &InvalidError{Reason: reason, Err: err}
}

// UnsupportedError reports a recognized but unimplemented WOFF2 feature,
// such as the transformed hmtx table.
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported feature: %s", e.Feature)
}

func unsupportedf(format string, args ...interface{}) *UnsupportedError {
	return &UnsupportedError{Feature: fmt.Sprintf(format, args...)}
}

// ErrTruncated indicates a byte source ran out of data before a read
// completed. It is mapped to InvalidError by every caller that surfaces
// errors to decode's public API.
var ErrTruncated = fmt.Errorf("truncated input")

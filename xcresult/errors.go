package xcresult

import (
	"errors"
	"fmt"
)

var (
	// ErrToolNotFound is returned when xcrun (and so xcresulttool) can not be launched.
	ErrToolNotFound = errors.New("xcrun xcresulttool not found, ensure Xcode Command Line Tools are installed")
	// ErrNoBuildResults ...
	ErrNoBuildResults = errors.New("no build results found in xcresult bundle")
	// ErrNoTestResults ...
	ErrNoTestResults = errors.New("no test results found in xcresult bundle")
)

// BundleNotFoundError is returned when the bundle path is not an existing directory.
type BundleNotFoundError struct {
	Path string
}

func (e *BundleNotFoundError) Error() string {
	return fmt.Sprintf("xcresult bundle not found at path: %s", e.Path)
}

// ToolFailedError is returned when xcresulttool exits with a non-zero status.
type ToolFailedError struct {
	Command string
	Output  string
}

func (e *ToolFailedError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Command, e.Output)
}

// InvalidJSONError is returned when a report's output does not match the expected structure.
type InvalidJSONError struct {
	Report ReportKind
	Err    error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("failed to parse %s JSON: %s", e.Report, e.Err)
}

func (e *InvalidJSONError) Unwrap() error {
	return e.Err
}

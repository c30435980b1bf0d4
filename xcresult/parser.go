package xcresult

import (
	"fmt"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"golang.org/x/sync/errgroup"
)

// ReportKind names a report of an xcresult bundle.
type ReportKind string

// Report kinds
const (
	BuildResultsReport ReportKind = "build-results"
	TestResultsReport  ReportKind = "test-results"
)

// ReportTool returns the raw JSON reports of an xcresult bundle.
type ReportTool interface {
	BuildResults(bundlePath string) ([]byte, error)
	TestResults(bundlePath string) ([]byte, error)
}

// Result combines the sections of an xcresult bundle.
// A section is nil if it could not be fetched or decoded.
type Result struct {
	BuildResults *BuildResults
	TestResults  *TestResults
}

// Parser reads an xcresult bundle.
type Parser struct {
	bundlePath  string
	tool        ReportTool
	pathChecker pathutil.PathChecker
	logger      log.Logger
}

// NewParser ...
func NewParser(bundlePath string, tool ReportTool, pathChecker pathutil.PathChecker, logger log.Logger) Parser {
	return Parser{
		bundlePath:  bundlePath,
		tool:        tool,
		pathChecker: pathChecker,
		logger:      logger,
	}
}

// Parse reads both the build and the test results.
// Only a missing bundle is an error, a section that fails to parse is left nil.
func (p Parser) Parse() (Result, error) {
	if err := p.validateBundle(); err != nil {
		return Result{}, err
	}

	var (
		result Result
		g      errgroup.Group
	)

	g.Go(func() error {
		buildResults, err := p.buildResults()
		if err != nil {
			p.logger.Warnf("Failed to parse build results: %s", err)
			return nil
		}
		result.BuildResults = &buildResults
		return nil
	})

	g.Go(func() error {
		testResults, err := p.testResults()
		if err != nil {
			p.logger.Warnf("Failed to parse test results: %s", err)
			return nil
		}
		result.TestResults = &testResults
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return result, nil
}

// ParseBuildResults reads only the build results (warnings, errors).
func (p Parser) ParseBuildResults() (BuildResults, error) {
	if err := p.validateBundle(); err != nil {
		return BuildResults{}, err
	}
	return p.buildResults()
}

// ParseTestResults reads only the test results.
func (p Parser) ParseTestResults() (TestResults, error) {
	if err := p.validateBundle(); err != nil {
		return TestResults{}, err
	}
	return p.testResults()
}

func (p Parser) buildResults() (BuildResults, error) {
	data, err := p.tool.BuildResults(p.bundlePath)
	if err != nil {
		return BuildResults{}, err
	}
	return DecodeBuildResults(data)
}

func (p Parser) testResults() (TestResults, error) {
	data, err := p.tool.TestResults(p.bundlePath)
	if err != nil {
		return TestResults{}, err
	}
	return DecodeTestResults(data)
}

func (p Parser) validateBundle() error {
	exists, err := p.pathChecker.IsDirExists(p.bundlePath)
	if err != nil {
		return fmt.Errorf("failed to check if xcresult bundle exists at %s: %w", p.bundlePath, err)
	}
	if !exists {
		return &BundleNotFoundError{Path: p.bundlePath}
	}
	return nil
}

// DecodeBuildResults decodes the output of `xcresulttool get build-results`.
// Unknown fields are ignored, missing required fields and null values are errors.
func DecodeBuildResults(data []byte) (BuildResults, error) {
	var results BuildResults
	if err := unmarshalObject(data, &results); err != nil {
		return BuildResults{}, &InvalidJSONError{Report: BuildResultsReport, Err: err}
	}
	return results, nil
}

// DecodeTestResults decodes the output of `xcresulttool get test-results tests`.
// Unknown fields, node types and results are tolerated, missing required fields and null values are not.
func DecodeTestResults(data []byte) (TestResults, error) {
	var results TestResults
	if err := unmarshalObject(data, &results); err != nil {
		return TestResults{}, &InvalidJSONError{Report: TestResultsReport, Err: err}
	}
	return results, nil
}

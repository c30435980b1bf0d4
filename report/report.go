// Package report builds the JSON or YAML document the step writes next to the xcresult bundle.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/bitrise-steplib/steps-xcresult-report/xcresult"
	"gopkg.in/yaml.v3"
)

// Format ...
type Format string

// Formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// New creates the report of the parsed sections.
// Source locations inside repositoryRoot are made relative to it.
func New(result xcresult.Result, repositoryRoot string) Report {
	var r Report
	if result.BuildResults != nil {
		r.Build = newBuild(*result.BuildResults, repositoryRoot)
	}
	if result.TestResults != nil {
		r.Tests = newTests(*result.TestResults, repositoryRoot)
	}
	return r
}

func newBuild(results xcresult.BuildResults, repositoryRoot string) *Build {
	build := Build{
		ActionTitle:          results.ActionTitle,
		Status:               results.Status,
		ErrorCount:           results.ErrorCount,
		WarningCount:         results.WarningCount,
		AnalyzerWarningCount: results.AnalyzerWarningCount,
		Issues:               []Issue{},
	}

	for _, buildIssue := range results.AllIssues() {
		issue := Issue{
			Type:     buildIssue.IssueType,
			Severity: buildIssue.Severity(),
			Message:  buildIssue.Message,
			Target:   buildIssue.TargetName,
			Class:    buildIssue.ClassName,
		}
		if location, ok := buildIssue.SourceLocation(); ok {
			issue.Location = relativeLocation(location, repositoryRoot)
		}
		build.Issues = append(build.Issues, issue)
	}

	return &build
}

func newTests(results xcresult.TestResults, repositoryRoot string) *Tests {
	tests := Tests{
		Summary:  results.Summary(),
		Failures: []xcresult.TestFailure{},
		Devices:  results.Devices,
	}

	for _, failure := range results.Failures() {
		if failure.SourceLocation != nil {
			failure.SourceLocation = relativeLocation(*failure.SourceLocation, repositoryRoot)
		}
		tests.Failures = append(tests.Failures, failure)
	}

	return &tests
}

func relativeLocation(location xcresult.SourceLocation, repositoryRoot string) *xcresult.SourceLocation {
	location.File = location.RelativePath(repositoryRoot)
	return &location
}

// Marshal encodes the report in the given format.
func (r Report) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(r, "", "  ")
	case FormatYAML:
		return yaml.Marshal(r)
	default:
		return nil, fmt.Errorf("unknown report format: %s", format)
	}
}

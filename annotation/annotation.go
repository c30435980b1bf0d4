// Package annotation turns build issues and test failures into workflow command annotations.
package annotation

import (
	"fmt"
	"strings"

	"github.com/bitrise-steplib/steps-xcresult-report/xcresult"
)

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

// Annotation points a message to a source location.
// File is relative to the repository root, Line and Column are 0 when unknown.
type Annotation struct {
	Level   xcresult.Severity
	File    string
	Line    int
	Column  int
	Title   string
	Message string
}

// FromBuildResults returns an annotation for every build issue, errors first.
func FromBuildResults(results xcresult.BuildResults, repositoryRoot string) []Annotation {
	var annotations []Annotation
	for _, issue := range results.AllIssues() {
		annotation := Annotation{
			Level:   issue.Severity(),
			Title:   issue.TargetName,
			Message: issue.Message,
		}

		if location, ok := issue.SourceLocation(); ok {
			annotation.File = location.RelativePath(repositoryRoot)
			annotation.Line = location.Line
			annotation.Column = location.Column
		}

		annotations = append(annotations, annotation)
	}
	return annotations
}

// FromTestFailures returns a failure annotation for every test failure.
func FromTestFailures(failures []xcresult.TestFailure, repositoryRoot string) []Annotation {
	var annotations []Annotation
	for _, failure := range failures {
		annotation := Annotation{
			Level:   xcresult.SeverityFailure,
			Title:   fmt.Sprintf("%s.%s", failure.TestClass, failure.TestName),
			Message: failure.Message,
		}

		if failure.SourceLocation != nil {
			annotation.File = failure.SourceLocation.RelativePath(repositoryRoot)
			annotation.Line = failure.SourceLocation.Line
			annotation.Column = failure.SourceLocation.Column
		}

		annotations = append(annotations, annotation)
	}
	return annotations
}

// String renders the annotation as a workflow command:
//
//	::error file=Sources/App.swift,line=12,col=4,title=App::Cannot find 'foo' in scope
func (a Annotation) String() string {
	var properties []string
	if a.File != "" {
		properties = append(properties, "file="+propertyEscaper.Replace(a.File))
	}
	if a.Line > 0 {
		properties = append(properties, fmt.Sprintf("line=%d", a.Line))
	}
	if a.Column > 0 {
		properties = append(properties, fmt.Sprintf("col=%d", a.Column))
	}
	if a.Title != "" {
		properties = append(properties, "title="+propertyEscaper.Replace(a.Title))
	}

	command := "::" + commandName(a.Level)
	if len(properties) > 0 {
		command += " " + strings.Join(properties, ",")
	}
	return command + "::" + dataEscaper.Replace(a.Message)
}

func commandName(level xcresult.Severity) string {
	switch level {
	case xcresult.SeverityFailure:
		return "error"
	case xcresult.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}

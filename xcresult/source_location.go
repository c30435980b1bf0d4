package xcresult

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const fileURLScheme = "file://"

// failureMessagePattern matches `<file>.swift:<line>: <message>`.
var failureMessagePattern = regexp.MustCompile(`^(.+\.swift):(\d+): (.+)$`)

// SourceLocation points to a line (and optionally a column) in a source file.
type SourceLocation struct {
	// File is an absolute path for build issues and a bare file name for test failures.
	File string `json:"file" yaml:"file"`
	// Line is 1-based.
	Line int `json:"line" yaml:"line"`
	// Column is 1-based, 0 if unknown.
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// HasColumn ...
func (l SourceLocation) HasColumn() bool {
	return l.Column > 0
}

// RelativePath returns File relative to repositoryRoot,
// or File unchanged if it is not inside repositoryRoot.
func (l SourceLocation) RelativePath(repositoryRoot string) string {
	if repositoryRoot == "" {
		return l.File
	}

	root := strings.TrimSuffix(repositoryRoot, "/")
	if !strings.HasPrefix(l.File, root+"/") {
		return l.File
	}
	return strings.TrimPrefix(l.File, root+"/")
}

/*
ParseSourceURL parses the sourceURL of a build issue:

	file:///path/File.swift#EndingColumnNumber=4&EndingLineNumber=12&StartingColumnNumber=4&StartingLineNumber=12&Timestamp=760000000.0

xcresulttool line and column numbers are 0-based, the returned location is 1-based.
The starting line number is required, a URL without it (or without a fragment at all) is rejected.
*/
func ParseSourceURL(sourceURL string) (SourceLocation, bool) {
	if !strings.HasPrefix(sourceURL, fileURLScheme) {
		return SourceLocation{}, false
	}

	path, fragment, found := strings.Cut(strings.TrimPrefix(sourceURL, fileURLScheme), "#")
	if !found || path == "" {
		return SourceLocation{}, false
	}

	var line, column int
	var hasLine bool
	for _, param := range strings.Split(fragment, "&") {
		if strings.Count(param, "=") != 1 {
			continue
		}

		key, value, _ := strings.Cut(param, "=")
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n == math.MaxInt {
			continue
		}

		switch key {
		case "StartingLineNumber":
			line, hasLine = n+1, true
		case "StartingColumnNumber":
			column = n + 1
		}
	}

	if !hasLine {
		return SourceLocation{}, false
	}

	return SourceLocation{
		File:   path,
		Line:   line,
		Column: column,
	}, true
}

// ParseFailureMessage splits the `<file>.swift:<line>: ` prefix off a failure message node's name.
// If the name has no such prefix the location is nil and the message is the name unchanged.
func ParseFailureMessage(name string) (*SourceLocation, string) {
	matches := failureMessagePattern.FindStringSubmatch(name)
	if len(matches) != 4 {
		return nil, name
	}

	line, err := strconv.Atoi(matches[2])
	if err != nil {
		return nil, name
	}

	return &SourceLocation{File: matches[1], Line: line}, matches[3]
}

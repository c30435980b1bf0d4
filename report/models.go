package report

import "github.com/bitrise-steplib/steps-xcresult-report/xcresult"

// Report is the serializable summary of an xcresult bundle.
// A section is nil when it could not be read from the bundle.
type Report struct {
	Build *Build `json:"build,omitempty" yaml:"build,omitempty"`
	Tests *Tests `json:"tests,omitempty" yaml:"tests,omitempty"`
}

// Build ...
type Build struct {
	ActionTitle          string  `json:"actionTitle,omitempty" yaml:"action_title,omitempty"`
	Status               string  `json:"status,omitempty" yaml:"status,omitempty"`
	ErrorCount           int     `json:"errorCount" yaml:"error_count"`
	WarningCount         int     `json:"warningCount" yaml:"warning_count"`
	AnalyzerWarningCount int     `json:"analyzerWarningCount" yaml:"analyzer_warning_count"`
	Issues               []Issue `json:"issues" yaml:"issues"`
}

// Issue is a build issue with a repository relative location.
type Issue struct {
	Type     string                   `json:"type" yaml:"type"`
	Severity xcresult.Severity        `json:"severity" yaml:"severity"`
	Message  string                   `json:"message" yaml:"message"`
	Target   string                   `json:"target,omitempty" yaml:"target,omitempty"`
	Class    string                   `json:"class,omitempty" yaml:"class,omitempty"`
	Location *xcresult.SourceLocation `json:"location,omitempty" yaml:"location,omitempty"`
}

// Tests ...
type Tests struct {
	Summary  xcresult.TestSummary   `json:"summary" yaml:"summary"`
	Failures []xcresult.TestFailure `json:"failures" yaml:"failures"`
	Devices  []xcresult.Device      `json:"devices,omitempty" yaml:"devices,omitempty"`
}

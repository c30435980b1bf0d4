package xcresult

import "strings"

// Severity is the annotation level of a build issue.
type Severity string

// Severities
const (
	SeverityNotice  Severity = "notice"
	SeverityWarning Severity = "warning"
	SeverityFailure Severity = "failure"
)

// BuildIssue is a build warning, error or analyzer warning.
type BuildIssue struct {
	IssueType  string `json:"issueType"`
	Message    string `json:"message"`
	TargetName string `json:"targetName,omitempty"`
	SourceURL  string `json:"sourceURL,omitempty"`
	ClassName  string `json:"className,omitempty"`
}

// Severity maps the issue type to an annotation level.
func (i BuildIssue) Severity() Severity {
	switch strings.ToLower(i.IssueType) {
	case "error":
		return SeverityFailure
	case "warning", "analyzer warning":
		return SeverityWarning
	default:
		return SeverityNotice
	}
}

// UnmarshalJSON requires issueType and message.
func (i *BuildIssue) UnmarshalJSON(b []byte) error {
	type plain BuildIssue
	var payload struct {
		plain
		IssueType *string `json:"issueType"`
		Message   *string `json:"message"`
	}
	if err := unmarshalObject(b, &payload); err != nil {
		return err
	}

	switch {
	case payload.IssueType == nil:
		return missingFieldError("issueType")
	case payload.Message == nil:
		return missingFieldError("message")
	}

	*i = BuildIssue(payload.plain)
	i.IssueType = *payload.IssueType
	i.Message = *payload.Message
	return nil
}

// SourceLocation parses the issue's sourceURL.
func (i BuildIssue) SourceLocation() (SourceLocation, bool) {
	if i.SourceURL == "" {
		return SourceLocation{}, false
	}
	return ParseSourceURL(i.SourceURL)
}

// BuildResults is the output of `xcresulttool get build-results`.
type BuildResults struct {
	ActionTitle          string       `json:"actionTitle,omitempty"`
	Status               string       `json:"status,omitempty"`
	WarningCount         int          `json:"warningCount"`
	ErrorCount           int          `json:"errorCount"`
	AnalyzerWarningCount int          `json:"analyzerWarningCount"`
	Warnings             []BuildIssue `json:"warnings"`
	Errors               []BuildIssue `json:"errors"`
	AnalyzerWarnings     []BuildIssue `json:"analyzerWarnings"`
}

// UnmarshalJSON requires the three counts and the three issue lists.
func (r *BuildResults) UnmarshalJSON(b []byte) error {
	type plain BuildResults
	var payload struct {
		plain
		WarningCount         *int          `json:"warningCount"`
		ErrorCount           *int          `json:"errorCount"`
		AnalyzerWarningCount *int          `json:"analyzerWarningCount"`
		Warnings             *[]BuildIssue `json:"warnings"`
		Errors               *[]BuildIssue `json:"errors"`
		AnalyzerWarnings     *[]BuildIssue `json:"analyzerWarnings"`
	}
	if err := unmarshalObject(b, &payload); err != nil {
		return err
	}

	switch {
	case payload.WarningCount == nil:
		return missingFieldError("warningCount")
	case payload.ErrorCount == nil:
		return missingFieldError("errorCount")
	case payload.AnalyzerWarningCount == nil:
		return missingFieldError("analyzerWarningCount")
	case payload.Warnings == nil:
		return missingFieldError("warnings")
	case payload.Errors == nil:
		return missingFieldError("errors")
	case payload.AnalyzerWarnings == nil:
		return missingFieldError("analyzerWarnings")
	}

	*r = BuildResults(payload.plain)
	r.WarningCount = *payload.WarningCount
	r.ErrorCount = *payload.ErrorCount
	r.AnalyzerWarningCount = *payload.AnalyzerWarningCount
	r.Warnings = *payload.Warnings
	r.Errors = *payload.Errors
	r.AnalyzerWarnings = *payload.AnalyzerWarnings
	return nil
}

// AllIssues returns errors, warnings and analyzer warnings, in this order.
func (r BuildResults) AllIssues() []BuildIssue {
	issues := make([]BuildIssue, 0, len(r.Errors)+len(r.Warnings)+len(r.AnalyzerWarnings))
	issues = append(issues, r.Errors...)
	issues = append(issues, r.Warnings...)
	return append(issues, r.AnalyzerWarnings...)
}

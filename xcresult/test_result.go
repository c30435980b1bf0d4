package xcresult

import (
	"bytes"
	"encoding/json"
	"errors"
)

type testResultKind int

const (
	testResultKindUnknown testResultKind = iota
	testResultKindPassed
	testResultKindFailed
	testResultKindSkipped
	testResultKindExpectedFailure
)

var testResultKindNames = map[testResultKind]string{
	testResultKindPassed:          "Passed",
	testResultKindFailed:          "Failed",
	testResultKindSkipped:         "Skipped",
	testResultKindExpectedFailure: "Expected Failure",
}

var testResultKindsByName = invertNames(testResultKindNames)

// TestResult is the outcome of a test node, with the same fallback
// behaviour as TestNodeType.
type TestResult struct {
	kind testResultKind
	raw  string
}

// Known test results.
var (
	TestResultPassed          = TestResult{kind: testResultKindPassed}
	TestResultFailed          = TestResult{kind: testResultKindFailed}
	TestResultSkipped         = TestResult{kind: testResultKindSkipped}
	TestResultExpectedFailure = TestResult{kind: testResultKindExpectedFailure}
)

// unknownTestResult returns the fallback variant carrying raw.
func unknownTestResult(raw string) TestResult {
	return TestResult{kind: testResultKindUnknown, raw: raw}
}

// ParseTestResult never fails: unrecognised values map to an unknown variant.
func ParseTestResult(s string) TestResult {
	if kind, ok := testResultKindsByName[s]; ok {
		return TestResult{kind: kind}
	}
	return unknownTestResult(s)
}

// IsUnknown ...
func (r TestResult) IsUnknown() bool {
	return r.kind == testResultKindUnknown
}

// String returns the xcresulttool representation of the result.
func (r TestResult) String() string {
	if r.kind == testResultKindUnknown {
		return r.raw
	}
	return testResultKindNames[r.kind]
}

// MarshalJSON ...
func (r TestResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON ...
func (r *TestResult) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, jsonNull) {
		return errors.New("test result is null")
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = ParseTestResult(s)
	return nil
}

package xcresult

// TestNode is a node of the `xcresulttool get test-results tests` tree.
type TestNode struct {
	NodeIdentifier    string       `json:"nodeIdentifier,omitempty"`
	NodeType          TestNodeType `json:"nodeType"`
	Name              string       `json:"name"`
	Result            *TestResult  `json:"result,omitempty"`
	Duration          string       `json:"duration,omitempty"`
	DurationInSeconds float64      `json:"durationInSeconds,omitempty"`
	Details           string       `json:"details,omitempty"`
	Children          []TestNode   `json:"children,omitempty"`
}

// UnmarshalJSON requires nodeType and name.
func (n *TestNode) UnmarshalJSON(b []byte) error {
	type plain TestNode
	var payload struct {
		plain
		NodeType *TestNodeType `json:"nodeType"`
		Name     *string       `json:"name"`
	}
	if err := unmarshalObject(b, &payload); err != nil {
		return err
	}

	switch {
	case payload.NodeType == nil:
		return missingFieldError("nodeType")
	case payload.Name == nil:
		return missingFieldError("name")
	}

	*n = TestNode(payload.plain)
	n.NodeType = *payload.NodeType
	n.Name = *payload.Name
	return nil
}

// Device is a run destination listed in the test results.
type Device struct {
	Architecture  string `json:"architecture,omitempty" yaml:"architecture,omitempty"`
	DeviceID      string `json:"deviceId,omitempty" yaml:"device_id,omitempty"`
	DeviceName    string `json:"deviceName,omitempty" yaml:"device_name,omitempty"`
	ModelName     string `json:"modelName,omitempty" yaml:"model_name,omitempty"`
	OSBuildNumber string `json:"osBuildNumber,omitempty" yaml:"os_build_number,omitempty"`
	OSVersion     string `json:"osVersion,omitempty" yaml:"os_version,omitempty"`
	Platform      string `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// TestFailure is a failure message attributed to its test class and test case.
type TestFailure struct {
	TestName       string          `json:"testName" yaml:"test_name"`
	TestClass      string          `json:"testClass" yaml:"test_class"`
	Message        string          `json:"message" yaml:"message"`
	SourceLocation *SourceLocation `json:"sourceLocation,omitempty" yaml:"source_location,omitempty"`
}

// TestSummary counts test cases by result.
// TotalCount also includes test cases with an unknown result,
// so it can be greater than the sum of the other counts.
type TestSummary struct {
	TotalCount           int `json:"totalCount" yaml:"total_count"`
	PassedCount          int `json:"passedCount" yaml:"passed_count"`
	FailedCount          int `json:"failedCount" yaml:"failed_count"`
	SkippedCount         int `json:"skippedCount" yaml:"skipped_count"`
	ExpectedFailureCount int `json:"expectedFailureCount" yaml:"expected_failure_count"`
}

// TestResults is the output of `xcresulttool get test-results tests`.
type TestResults struct {
	TestNodes []TestNode `json:"testNodes"`
	Devices   []Device   `json:"devices,omitempty"`
}

// UnmarshalJSON requires testNodes.
func (r *TestResults) UnmarshalJSON(b []byte) error {
	type plain TestResults
	var payload struct {
		plain
		TestNodes *[]TestNode `json:"testNodes"`
	}
	if err := unmarshalObject(b, &payload); err != nil {
		return err
	}

	if payload.TestNodes == nil {
		return missingFieldError("testNodes")
	}

	*r = TestResults(payload.plain)
	r.TestNodes = *payload.TestNodes
	return nil
}

// Failures ...
func (r TestResults) Failures() []TestFailure {
	return ExtractFailures(r.TestNodes)
}

// Summary ...
func (r TestResults) Summary() TestSummary {
	return ComputeSummary(r.TestNodes)
}

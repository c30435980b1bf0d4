package xcresult

import (
	"bytes"
	"encoding/json"
	"errors"
)

type testNodeKind int

const (
	testNodeKindUnknown testNodeKind = iota
	testNodeKindTestPlan
	testNodeKindUnitTestBundle
	testNodeKindUITestBundle
	testNodeKindTestSuite
	testNodeKindTestCase
	testNodeKindDevice
	testNodeKindTestPlanConfiguration
	testNodeKindArguments
	testNodeKindRepetition
	testNodeKindTestCaseRun
	testNodeKindFailureMessage
	testNodeKindSourceCodeReference
	testNodeKindAttachment
	testNodeKindExpression
	testNodeKindTestValue
	testNodeKindRuntimeWarning
)

var testNodeKindNames = map[testNodeKind]string{
	testNodeKindTestPlan:              "Test Plan",
	testNodeKindUnitTestBundle:        "Unit test bundle",
	testNodeKindUITestBundle:          "UI test bundle",
	testNodeKindTestSuite:             "Test Suite",
	testNodeKindTestCase:              "Test Case",
	testNodeKindDevice:                "Device",
	testNodeKindTestPlanConfiguration: "Test Plan Configuration",
	testNodeKindArguments:             "Arguments",
	testNodeKindRepetition:            "Repetition",
	testNodeKindTestCaseRun:           "Test Case Run",
	testNodeKindFailureMessage:        "Failure Message",
	testNodeKindSourceCodeReference:   "Source Code Reference",
	testNodeKindAttachment:            "Attachment",
	testNodeKindExpression:            "Expression",
	testNodeKindTestValue:             "Test Value",
	testNodeKindRuntimeWarning:        "Runtime Warning",
}

var testNodeKindsByName = invertNames(testNodeKindNames)

// TestNodeType is the type of a node in the test-results tree.
// Values that are not known to this package are kept as they are,
// so reports of newer xcresulttool versions can still be read.
type TestNodeType struct {
	kind testNodeKind
	raw  string
}

// Known test node types.
var (
	TestNodeTypeTestPlan              = TestNodeType{kind: testNodeKindTestPlan}
	TestNodeTypeUnitTestBundle        = TestNodeType{kind: testNodeKindUnitTestBundle}
	TestNodeTypeUITestBundle          = TestNodeType{kind: testNodeKindUITestBundle}
	TestNodeTypeTestSuite             = TestNodeType{kind: testNodeKindTestSuite}
	TestNodeTypeTestCase              = TestNodeType{kind: testNodeKindTestCase}
	TestNodeTypeDevice                = TestNodeType{kind: testNodeKindDevice}
	TestNodeTypeTestPlanConfiguration = TestNodeType{kind: testNodeKindTestPlanConfiguration}
	TestNodeTypeArguments             = TestNodeType{kind: testNodeKindArguments}
	TestNodeTypeRepetition            = TestNodeType{kind: testNodeKindRepetition}
	TestNodeTypeTestCaseRun           = TestNodeType{kind: testNodeKindTestCaseRun}
	TestNodeTypeFailureMessage        = TestNodeType{kind: testNodeKindFailureMessage}
	TestNodeTypeSourceCodeReference   = TestNodeType{kind: testNodeKindSourceCodeReference}
	TestNodeTypeAttachment            = TestNodeType{kind: testNodeKindAttachment}
	TestNodeTypeExpression            = TestNodeType{kind: testNodeKindExpression}
	TestNodeTypeTestValue             = TestNodeType{kind: testNodeKindTestValue}
	TestNodeTypeRuntimeWarning        = TestNodeType{kind: testNodeKindRuntimeWarning}
)

// unknownTestNodeType returns the fallback variant carrying raw.
func unknownTestNodeType(raw string) TestNodeType {
	return TestNodeType{kind: testNodeKindUnknown, raw: raw}
}

// ParseTestNodeType never fails: unrecognised values map to an unknown variant.
func ParseTestNodeType(s string) TestNodeType {
	if kind, ok := testNodeKindsByName[s]; ok {
		return TestNodeType{kind: kind}
	}
	return unknownTestNodeType(s)
}

// IsUnknown ...
func (t TestNodeType) IsUnknown() bool {
	return t.kind == testNodeKindUnknown
}

// String returns the xcresulttool representation of the type.
func (t TestNodeType) String() string {
	if t.kind == testNodeKindUnknown {
		return t.raw
	}
	return testNodeKindNames[t.kind]
}

// MarshalJSON ...
func (t TestNodeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON ...
func (t *TestNodeType) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, jsonNull) {
		return errors.New("test node type is null")
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = ParseTestNodeType(s)
	return nil
}

var jsonNull = []byte("null")

func invertNames[K comparable](names map[K]string) map[string]K {
	inverted := make(map[string]K, len(names))
	for k, name := range names {
		inverted[name] = k
	}
	return inverted
}

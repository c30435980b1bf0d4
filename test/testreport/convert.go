package testreport

import (
	"fmt"
	"strings"
	"time"

	"github.com/bitrise-steplib/steps-xcresult-report/xcresult"
)

// Convert creates a JUnit report from the test results tree.
// Every test suite node becomes a test suite, test cases found outside of a suite are grouped under their bundle.
func Convert(results xcresult.TestResults) TestReport {
	c := converter{bundleSuites: map[string]int{}}
	c.walk(results.TestNodes, "", -1)

	var report TestReport
	for _, suite := range c.suites {
		report.AddTestSuite(suite)
	}
	return report
}

type converter struct {
	suites       []TestSuite
	bundleSuites map[string]int
}

func (c *converter) walk(nodes []xcresult.TestNode, bundle string, suiteIdx int) {
	for _, node := range nodes {
		switch node.NodeType {
		case xcresult.TestNodeTypeUnitTestBundle, xcresult.TestNodeTypeUITestBundle:
			c.walk(node.Children, node.Name, -1)
		case xcresult.TestNodeTypeTestSuite:
			c.suites = append(c.suites, TestSuite{Name: node.Name})
			c.walk(node.Children, bundle, len(c.suites)-1)
		case xcresult.TestNodeTypeTestCase:
			if node.Result == nil {
				continue
			}

			idx := suiteIdx
			if idx < 0 {
				idx = c.bundleSuite(bundle)
			}
			suite := &c.suites[idx]
			suite.AddTestCase(testCase(node, suite.Name))
		default:
			c.walk(node.Children, bundle, suiteIdx)
		}
	}
}

func (c *converter) bundleSuite(bundle string) int {
	if idx, ok := c.bundleSuites[bundle]; ok {
		return idx
	}

	c.suites = append(c.suites, TestSuite{Name: bundle})
	idx := len(c.suites) - 1
	c.bundleSuites[bundle] = idx
	return idx
}

func testCase(node xcresult.TestNode, suiteName string) TestCase {
	className := strings.Split(node.NodeIdentifier, "/")[0]
	if className == "" {
		// Some test cases come without an identifier.
		className = suiteName
	}

	testCase := TestCase{
		Name:      node.Name,
		ClassName: className,
		Time:      durationInSeconds(node),
	}

	switch *node.Result {
	case xcresult.TestResultFailed:
		testCase.Failure = &Failure{Value: failureMessages(node, suiteName)}
	case xcresult.TestResultSkipped:
		testCase.Skipped = &Skipped{}
	}

	return testCase
}

func failureMessages(node xcresult.TestNode, suiteName string) string {
	suite := xcresult.TestNode{
		NodeType: xcresult.TestNodeTypeTestSuite,
		Name:     suiteName,
		Children: []xcresult.TestNode{node},
	}

	var messages []string
	for _, failure := range xcresult.ExtractFailures([]xcresult.TestNode{suite}) {
		if failure.SourceLocation != nil {
			messages = append(messages, fmt.Sprintf("%s:%d - %s", failure.SourceLocation.File, failure.SourceLocation.Line, failure.Message))
		} else {
			messages = append(messages, failure.Message)
		}
	}
	return strings.Join(messages, "\n")
}

// durationInSeconds falls back to the formatted duration (for example "1m 2.5s") when the numeric one is missing.
func durationInSeconds(node xcresult.TestNode) float64 {
	if node.DurationInSeconds > 0 {
		return node.DurationInSeconds
	}
	if node.Duration == "" {
		return 0
	}

	d, err := time.ParseDuration(strings.ReplaceAll(node.Duration, " ", ""))
	if err != nil {
		return 0
	}
	return d.Seconds()
}

package xcresult

// traversalContext is passed by value, so a child never sees what its siblings set.
type traversalContext struct {
	testClass    string
	hasTestClass bool
	testName     string
	hasTestName  bool
}

// ExtractFailures walks the nodes depth-first and returns their failure messages in document order.
// A failure message is only reported if it has both an enclosing test suite and test case.
func ExtractFailures(nodes []TestNode) []TestFailure {
	return collectFailures(nodes, traversalContext{}, nil)
}

func collectFailures(nodes []TestNode, ctx traversalContext, failures []TestFailure) []TestFailure {
	for _, node := range nodes {
		local := ctx

		switch node.NodeType {
		case TestNodeTypeTestSuite:
			local.testClass, local.hasTestClass = node.Name, true
		case TestNodeTypeTestCase:
			local.testName, local.hasTestName = node.Name, true
		case TestNodeTypeFailureMessage:
			if local.hasTestClass && local.hasTestName {
				location, message := ParseFailureMessage(node.Name)
				failures = append(failures, TestFailure{
					TestName:       local.testName,
					TestClass:      local.testClass,
					Message:        message,
					SourceLocation: location,
				})
			}
		}

		failures = collectFailures(node.Children, local, failures)
	}
	return failures
}

// ComputeSummary counts the test case nodes that have a result.
func ComputeSummary(nodes []TestNode) TestSummary {
	var summary TestSummary
	countResults(nodes, &summary)
	return summary
}

func countResults(nodes []TestNode, summary *TestSummary) {
	for _, node := range nodes {
		if node.NodeType == TestNodeTypeTestCase && node.Result != nil {
			summary.TotalCount++

			switch *node.Result {
			case TestResultPassed:
				summary.PassedCount++
			case TestResultFailed:
				summary.FailedCount++
			case TestResultSkipped:
				summary.SkippedCount++
			case TestResultExpectedFailure:
				summary.ExpectedFailureCount++
			}
		}

		countResults(node.Children, summary)
	}
}

package testreport

import (
	"encoding/xml"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// TestReport is a JUnit XML document.
type TestReport struct {
	XMLName    xml.Name    `xml:"testsuites"`
	Tests      int         `xml:"tests,attr"`
	Failures   int         `xml:"failures,attr"`
	Skipped    int         `xml:"skipped,attr"`
	Time       float64     `xml:"time,attr"`
	TestSuites []TestSuite `xml:"testsuite"`
}

// TestSuite groups the test cases of a test class.
type TestSuite struct {
	XMLName   xml.Name   `xml:"testsuite"`
	Name      string     `xml:"name,attr"`
	Tests     int        `xml:"tests,attr"`
	Failures  int        `xml:"failures,attr"`
	Errors    int        `xml:"errors,attr"`
	Skipped   int        `xml:"skipped,attr"`
	Time      float64    `xml:"time,attr"`
	TestCases []TestCase `xml:"testcase"`
}

// TestCase is a single test run, passed unless Failure or Skipped is set.
type TestCase struct {
	XMLName   xml.Name `xml:"testcase"`
	Name      string   `xml:"name,attr"`
	ClassName string   `xml:"classname,attr"`
	Time      float64  `xml:"time,attr"`
	Failure   *Failure `xml:"failure,omitempty"`
	Skipped   *Skipped `xml:"skipped,omitempty"`
}

// Failure holds the failure messages of a test case.
type Failure struct {
	XMLName xml.Name `xml:"failure,omitempty"`
	Message string   `xml:"message,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

// Skipped marks a skipped test case.
type Skipped struct {
	XMLName xml.Name `xml:"skipped,omitempty"`
	Value   string   `xml:",chardata"`
}

// AddTestSuite appends the suite and updates the report totals.
func (r *TestReport) AddTestSuite(suite TestSuite) {
	r.Tests += suite.Tests
	r.Failures += suite.Failures
	r.Skipped += suite.Skipped
	r.Time += suite.Time
	r.TestSuites = append(r.TestSuites, suite)
}

// AddTestCase appends the test case and updates the suite counters.
func (s *TestSuite) AddTestCase(testCase TestCase) {
	s.Tests++
	if testCase.Failure != nil {
		s.Failures++
	}
	if testCase.Skipped != nil {
		s.Skipped++
	}
	s.Time += testCase.Time
	s.TestCases = append(s.TestCases, testCase)
}

// XML returns the indented document with an XML header.
func (r TestReport) XML() ([]byte, error) {
	data, err := xml.MarshalIndent(r, "", " ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), data...), nil
}

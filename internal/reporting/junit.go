package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/spboyer/mergegate/internal/gate"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one gate run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr,omitempty"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one check.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure is a check that legitimately found a problem.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError is a check that could not be evaluated.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a check that never ran.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// junitErrorTypes maps non-check failures to JUnit error types.
var junitErrorTypes = map[gate.FailureKind]string{
	gate.KindFault:    "ToolInvocationFault",
	gate.KindTimeout:  "Timeout",
	gate.KindCanceled: "Canceled",
}

// ConvertToJUnit converts a RunReport to JUnit XML structures. Check
// failures become <failure>, faults, timeouts and cancellations become
// <error>, and checks that never ran become <skipped>.
func ConvertToJUnit(report *gate.RunReport, suiteName string) *JUnitTestSuites {
	durationSec := report.Duration.Seconds()

	suite := JUnitTestSuite{
		Name:    suiteName,
		Tests:   report.Total(),
		Skipped: len(report.Skipped),
		Time:    durationSec,
		Properties: []JUnitProperty{
			{Name: "root", Value: report.Root},
			{Name: "partial", Value: fmt.Sprintf("%t", report.Partial)},
		},
	}
	if !report.StartedAt.IsZero() {
		suite.Timestamp = report.StartedAt.UTC().Format(time.RFC3339)
	}

	for _, res := range report.Results {
		tc := JUnitTestCase{
			Name:      res.Name,
			Classname: suiteName,
			Time:      res.Duration.Seconds(),
		}
		switch res.Outcome.Kind {
		case gate.KindNone:
		case gate.KindCheck:
			suite.Failures++
			tc.Failure = &JUnitFailure{
				Message: res.Outcome.Detail,
				Type:    "CheckFailure",
			}
		default:
			suite.Errors++
			errType, ok := junitErrorTypes[res.Outcome.Kind]
			if !ok {
				errType = "Error"
			}
			tc.Error = &JUnitError{
				Message: res.Outcome.Detail,
				Type:    errType,
			}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}

	for _, name := range report.Skipped {
		suite.TestCases = append(suite.TestCases, JUnitTestCase{
			Name:      name,
			Classname: suiteName,
			Skipped:   &JUnitSkipped{Message: "run interrupted"},
		})
	}

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Errors:     suite.Errors,
		Time:       durationSec,
		TestSuites: []JUnitTestSuite{suite},
	}
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(report *gate.RunReport, suiteName, path string) error {
	suites := ConvertToJUnit(report, suiteName)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0o644)
}

package report

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/agentready/arv/internal/analyzer"
	"github.com/agentready/arv/internal/registry"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Skipped    int              `xml:"skipped,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one check category or the static-analysis pass.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one check outcome or one violation. There is no
// time attribute: repeated runs over unchanged input must emit identical
// bytes, and wall-clock durations would differ every run.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a failed check or a blocking violation.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a gated-off check or a warning-only violation.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a RunReport to JUnit XML: one suite per populated
// check category plus one suite for static analysis. Warning violations are
// recorded as skipped cases so CI does not fail on them.
func ConvertToJUnit(r *RunReport) *JUnitTestSuites {
	suites := &JUnitTestSuites{}

	byCategory := r.OutcomesByCategory()
	for _, cat := range registry.KnownCategories {
		outcomes := byCategory[cat]
		if len(outcomes) == 0 {
			continue
		}
		suite := JUnitTestSuite{
			Name: string(cat),
			Properties: []JUnitProperty{
				{Name: "environment", Value: string(r.Environment)},
			},
		}
		for _, o := range outcomes {
			tc := JUnitTestCase{
				Name:      o.Check.ID,
				Classname: string(cat),
			}
			switch {
			case o.Skipped:
				tc.Skipped = &JUnitSkipped{Message: o.Details}
				suite.Skipped++
			case !o.Passed:
				tc.Failure = &JUnitFailure{
					Message: fmt.Sprintf("%s: exit code %d", o.Check.ID, o.ExitCode),
					Type:    "CheckFailure",
					Body:    o.Details,
				}
				suite.Failures++
			}
			suite.Tests++
			suite.TestCases = append(suite.TestCases, tc)
		}
		suites.TestSuites = append(suites.TestSuites, suite)
		suites.Tests += suite.Tests
		suites.Failures += suite.Failures
		suites.Skipped += suite.Skipped
	}

	if len(r.Violations) > 0 {
		suite := JUnitTestSuite{
			Name: "static-analysis",
			Properties: []JUnitProperty{
				{Name: "environment", Value: string(r.Environment)},
			},
		}
		for _, v := range r.Violations {
			name := v.FilePath
			if v.Line > 0 {
				name = fmt.Sprintf("%s:%d", v.FilePath, v.Line)
			}
			tc := JUnitTestCase{
				Name:      name,
				Classname: v.RuleID,
			}
			if v.Severity == analyzer.SeverityWarning {
				tc.Skipped = &JUnitSkipped{Message: v.Message}
				suite.Skipped++
			} else {
				tc.Failure = &JUnitFailure{
					Message: v.Message,
					Type:    "RuleViolation",
				}
				suite.Failures++
			}
			suite.Tests++
			suite.TestCases = append(suite.TestCases, tc)
		}
		suites.TestSuites = append(suites.TestSuites, suite)
		suites.Tests += suite.Tests
		suites.Failures += suite.Failures
		suites.Skipped += suite.Skipped
	}

	return suites
}

// WriteJUnitXML writes JUnit XML for the report to the specified file path.
func WriteJUnitXML(r *RunReport, path string) error {
	suites := ConvertToJUnit(r)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}

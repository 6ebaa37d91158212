package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/polyderiv/isa"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Stats        isa.Stats
	LintIssues   []Issue
	StructIssues []Issue
	LayoutIssues []Issue
	Results      []Result
	Passed       int
	Failed       int
	Tape         *TapeInfo
}

// GenerateReport runs lint and every scenario, returns a report
func GenerateReport(p isa.Program, tape *TapeInfo, scenarios []Scenario, maxSteps int) *VerificationReport {
	report := &VerificationReport{
		Stats: p.Stats(),
		Tape:  tape,
	}

	report.LintIssues = RunLint(p, tape)
	for _, issue := range report.LintIssues {
		if issue.Type == IssueStruct {
			report.StructIssues = append(report.StructIssues, issue)
		} else {
			report.LayoutIssues = append(report.LayoutIssues, issue)
		}
	}

	// Scenarios are pointless on a program with unmatched brackets.
	if len(report.StructIssues) == 0 {
		report.Results = RunScenarios(p, tape, scenarios, maxSteps)
	}
	for _, r := range report.Results {
		if r.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
	}

	return report
}

// OK reports whether lint is clean and every scenario passed.
func (r *VerificationReport) OK() bool {
	return len(r.LintIssues) == 0 && r.Failed == 0 && len(r.Results) > 0
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)
	dash := strings.Repeat("-", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "DERIVATIVE PROGRAM VERIFICATION REPORT")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "\nProgram length: %d instructions, max loop depth %d\n",
		r.Stats.Length, r.Stats.MaxDepth)
	for _, op := range isa.Opcodes {
		fmt.Fprintf(w, "  %s %-10s %d\n", op.Symbol(), op.Name(), r.Stats.Counts[op])
	}

	// STAGE 1: LINT
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "✓ No lint issues found!")
	} else {
		fmt.Fprintf(w, "⚠ Found %d lint issues:\n", len(r.LintIssues))
		writeIssues(w, "STRUCT", r.StructIssues, dash)
		writeIssues(w, "LAYOUT", r.LayoutIssues, dash)
	}

	// STAGE 2: SCENARIOS
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: FUNCTIONAL SIMULATION")
	fmt.Fprintln(w, separator)

	if len(r.Results) == 0 {
		fmt.Fprintln(w, "⚠ Scenarios skipped")
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"", "Scenario", "Input", "Expected", "Got", "Steps"})
		for _, res := range r.Results {
			mark := "PASS"
			got := quote(res.Got)
			if !res.Passed {
				mark = "FAIL"
				if res.Err != nil {
					got = res.Err.Error()
				}
			}
			t.AppendRow(table.Row{
				mark, res.Desc, quote(res.Input), quote(res.Expected), got, res.Steps,
			})
		}
		t.Render()
	}

	// STAGE 3: SUMMARY
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "VERIFICATION SUMMARY")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Lint Result: %d issues detected (%d STRUCT, %d LAYOUT)\n",
		len(r.LintIssues), len(r.StructIssues), len(r.LayoutIssues))
	fmt.Fprintf(w, "Scenarios: %d passed, %d failed out of %d\n",
		r.Passed, r.Failed, len(r.Results))

	if r.OK() {
		fmt.Fprintln(w, "✓ PROGRAM PASSED ALL CHECKS")
	} else {
		fmt.Fprintln(w, "⚠ PROGRAM FAILED VERIFICATION")
	}

	fmt.Fprintln(w)
}

func writeIssues(w io.Writer, title string, issues []Issue, dash string) {
	if len(issues) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s ISSUES (%d):\n", title, len(issues))
	fmt.Fprintln(w, dash)
	for _, issue := range issues {
		fmt.Fprintf(w, "  [pos=%d cell=%d] %s\n", issue.Pos, issue.Cell, issue.Message)
	}
}

func quote(s string) string {
	q := fmt.Sprintf("%q", s)
	if len(q) > 40 {
		q = q[:37] + "..."
	}
	return q
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}

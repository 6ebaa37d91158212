package verify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/polyderiv/isa"
	"github.com/sarchlab/polyderiv/util"
)

// MaxCoefficients is the longest input whose derivative stays below 256 for
// every digit: 9 * 28 = 252.
const MaxCoefficients = 29

// Scenario is one derivative input with its expected output.
type Scenario struct {
	Input    string
	Expected string
	Desc     string
}

// Result is the outcome of running one scenario.
type Result struct {
	Scenario
	Got    string
	Err    error
	Steps  int
	Passed bool
}

// DefaultScenarios returns the known-answer derivative cases.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{"7\n", "0\n", "constant -> 0"},
		{"0\n", "0\n", "zero constant"},
		{"1 5\n", "5\n", "linear"},
		{"1 5 3\n", "5 6\n", "quadratic"},
		{"1 5 0 3\n", "5 0 9\n", "cubic"},
		{"0 0 1\n", "0 2\n", "x^2"},
		{"0 1\n", "1\n", "x"},
		{"1 1\n", "1\n", "x+1"},
		{"0 0 0 2\n", "0 0 6\n", "2x^3"},
		{"9 9 9\n", "9 18\n", "two-digit result"},
		{"4 3 2\n", "3 4\n", "2x^2+3x+4"},
		{"0 0 0 0 1\n", "0 0 0 4\n", "x^4"},
		{"0 0 0 0 0 5\n", "0 0 0 0 25\n", "5x^5 -> 25x^4"},
		{"0 0 0\n", "0 0\n", "zero polynomial degree 2"},
		{
			FormatCoefficients(util.Take(util.MakeConstGen(1), 6)),
			"1 2 3 4 5\n",
			"sum of x^k",
		},
		{
			FormatCoefficients(util.Take(util.MakeIncreasingGen(0), 9)),
			"2 6 12 20 30 42 56 72\n",
			"ascending digits",
		},
		{"0 0 0 0 0 0 0 0 0 9\n", "0 0 0 0 0 0 0 0 81\n", "9x^9 -> 81x^8"},
		{
			strings.Repeat("0 ", 28) + "9\n",
			strings.Repeat("0 ", 27) + "252\n",
			"9x^28 -> 252x^27 (three-digit)",
		},
		{
			strings.Repeat("0 ", 20) + "5\n",
			strings.Repeat("0 ", 19) + "100\n",
			"5x^20 -> 100x^19 (inner zero digits)",
		},
	}
}

// RandomScenarios draws count inputs of 1 to maxLen coefficients from a
// seeded digit generator. maxLen is capped at MaxCoefficients.
func RandomScenarios(seed int64, count, maxLen int) []Scenario {
	if maxLen > MaxCoefficients {
		maxLen = MaxCoefficients
	}
	if maxLen < 1 {
		maxLen = 1
	}

	digits := util.MakeDigitGen(seed)
	lengths := util.MakeDigitGen(seed + 1)

	scenarios := make([]Scenario, 0, count)
	for i := 0; i < count; i++ {
		n := 1 + (lengths()*7+i)%maxLen
		input := FormatCoefficients(util.Take(digits, n))
		expected, _ := ReferenceDerivative(input)
		scenarios = append(scenarios, Scenario{
			Input:    input,
			Expected: expected,
			Desc:     fmt.Sprintf("random #%d (%d coefficients)", i, n),
		})
	}

	return scenarios
}

// FormatCoefficients renders coefficients in the input format.
func FormatCoefficients(coeffs []int) string {
	parts := make([]string, len(coeffs))
	for i, c := range coeffs {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, " ") + "\n"
}

// ParseCoefficients reads single-digit coefficients, low degree first.
func ParseCoefficients(input string) ([]int, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no coefficients in %q", input)
	}

	coeffs := make([]int, len(fields))
	for i, f := range fields {
		if len(f) != 1 || f[0] < '0' || f[0] > '9' {
			return nil, fmt.Errorf("coefficient %d is not a single digit: %q", i, f)
		}
		coeffs[i] = int(f[0] - '0')
	}

	return coeffs, nil
}

// ReferenceDerivative applies the power rule in Go and renders the result
// the way the generated program does. Products wrap at 256 like the
// machine's cells.
func ReferenceDerivative(input string) (string, error) {
	coeffs, err := ParseCoefficients(input)
	if err != nil {
		return "", err
	}

	if len(coeffs) == 1 {
		return "0\n", nil
	}

	terms := make([]int, 0, len(coeffs)-1)
	for i := 1; i < len(coeffs); i++ {
		terms = append(terms, (i*coeffs[i])%256)
	}

	return FormatCoefficients(terms), nil
}

// RunScenarios runs every scenario on a fresh functional simulator.
func RunScenarios(p isa.Program, tape *TapeInfo, scenarios []Scenario, maxSteps int) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		fs := NewFunctionalSimulator(p, tape)
		err := fs.Run([]byte(sc.Input), maxSteps)
		got := fs.Output()
		results = append(results, Result{
			Scenario: sc,
			Got:      got,
			Err:      err,
			Steps:    fs.Steps(),
			Passed:   err == nil && got == sc.Expected,
		})
	}

	return results
}

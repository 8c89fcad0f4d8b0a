// Command ineqcheck is a benchmark-file driver: it reads a file of
// alternating (formula, expected) lines, solves each formula, and reports
// pass/fail. It never fails the process - a malformed benchmark line is
// reported as a failed case, not a crash, since a parse error belongs to a
// single solve call and should never abort the whole driver loop.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	ineqsolve "github.com/Chaibot97/Inequality-Checker"
	"github.com/Chaibot97/Inequality-Checker/internal/obslog"
	"github.com/fatih/color"
)

func main() {
	verbose := flag.Bool("v", false, "enable verbose pivot tracing")
	flag.Parse()
	obslog.Init(*verbose)

	if flag.NArg() < 1 {
		fmt.Println("Usage: ineqcheck [-v] <benchmark-file>")
		return
	}

	file, err := os.Open(flag.Arg(0))
	if err != nil {
		color.Red("failed to open benchmark file: %s", err)
		return
	}
	defer file.Close()

	passed, total := run(file)
	fmt.Printf("\n%d/%d passed\n", passed, total)
}

// run drives one benchmark file and returns (passed, total). Lines starting
// with '%' or blank lines are skipped; the remaining lines are consumed in
// pairs of (formula, expected).
func run(f *os.File) (passed, total int) {
	scanner := bufio.NewScanner(f)
	var formula string
	haveFormula := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}

		if !haveFormula {
			formula = line
			haveFormula = true
			continue
		}

		expected := line
		haveFormula = false
		total++
		if reportCase(formula, expected) {
			passed++
		}
	}

	return passed, total
}

func reportCase(formula, expected string) bool {
	fmt.Printf("formula:  %s\n", formula)

	out, err := ineqsolve.Solve(formula)
	if err != nil {
		out = fmt.Sprintf("ERROR: %s", err)
	}
	fmt.Printf("output:   %s\n", out)

	ok := out == expected
	if ok {
		color.Green("Passed\n")
	} else {
		color.Red("Failed. Expected: %s\n", expected)
	}
	return ok
}

// Package cli implements the loancalc command line:
//
//	loancalc <loan amount> <duration years> [config file]
//
// Every problem is reported as a single line on out.
package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"loan-calc/config"
	"loan-calc/domain"
	"loan-calc/service"
)

const usage = "Usage: loancalc <loan amount> <duration years> [optional config file]. E.g. loancalc 100000 10"

// Run executes the command for args (without the program name).
// It returns 1 only when out cannot be written.
func Run(args []string, out io.Writer) int {
	if len(args) < 2 {
		return printLine(out, usage)
	}

	loanAmount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return printLine(out, "First argument loan amount must be float value")
	}

	durationYears, err := strconv.Atoi(args[1])
	if err != nil || durationYears > math.MaxInt/12 || durationYears < math.MinInt/12 {
		return printLine(out, "Second argument duration years must be integer value")
	}

	configFile := config.DefaultOptionsFile
	if len(args) > 2 {
		configFile = args[2]
	}

	options, err := config.LoadLoanOptions(configFile)
	if err != nil {
		return printLine(out, err.Error())
	}

	result, err := service.NewLoanCalculator(options).Calculate(loanAmount, durationYears*12)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			return printLine(out, err.Error())
		}
		return printLine(out, fmt.Sprintf("unexpected error: %v", err))
	}

	_, err = fmt.Fprintf(out,
		"Monthly payment: %.2f\nTotal interest: %.2f\nAdministration fee: %.2f\nAnnual percentage rate (APR): %.2f %%\n",
		result.MonthlyPayment, result.TotalInterest, result.AdministrationFee, result.AnnualPercentageRate)
	if err != nil {
		return 1
	}
	return 0
}

func printLine(out io.Writer, line string) int {
	if _, err := fmt.Fprintln(out, line); err != nil {
		return 1
	}
	return 0
}

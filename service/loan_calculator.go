package service

import (
	"math"

	"loan-calc/domain"
)

// LoanCalculator evaluates loans for a fixed set of options.
// It holds no mutable state and is safe for concurrent use.
type LoanCalculator struct {
	options domain.LoanOptions
}

func NewLoanCalculator(options domain.LoanOptions) *LoanCalculator {
	return &LoanCalculator{options: options}
}

// Options returns the options the calculator was built with.
func (c *LoanCalculator) Options() domain.LoanOptions {
	return c.options
}

// Calculate returns the repayment figures for loanAmount repaid over durationMonths.
// Non-positive arguments yield a *domain.InvalidArgumentError.
func (c *LoanCalculator) Calculate(loanAmount float64, durationMonths int) (domain.LoanResult, error) {
	if !(loanAmount > 0) || math.IsInf(loanAmount, 1) {
		return domain.LoanResult{}, domain.NewInvalidArgumentError("loanAmount", "must be positive")
	}
	if durationMonths <= 0 {
		return domain.LoanResult{}, domain.NewInvalidArgumentError("durationMonths", "must be positive")
	}

	factor := loanFactor(c.monthlyInterestRate(), durationMonths)

	administrationFee := c.administrationFee(loanAmount)
	monthlyPayment := roundTo2Decimals(loanAmount / factor)

	return domain.LoanResult{
		MonthlyPayment:       monthlyPayment,
		AdministrationFee:    administrationFee,
		TotalInterest:        totalInterest(loanAmount, factor, durationMonths),
		AnnualPercentageRate: c.annualPercentageRate(loanAmount, monthlyPayment, administrationFee, durationMonths),
	}, nil
}

func (c *LoanCalculator) monthlyInterestRate() float64 {
	return c.options.Interest / 100 / 12
}

// Rounded before the cap is applied.
func (c *LoanCalculator) administrationFee(loanAmount float64) float64 {
	return math.Min(
		roundTo2Decimals(loanAmount*c.options.AdministrationFeeRate/100),
		c.options.AdministrationFeeMax,
	)
}

// totalInterest uses the unrounded payment, so it is not monthlyPayment*n - loanAmount.
func totalInterest(loanAmount, factor float64, durationMonths int) float64 {
	return roundTo2Decimals(loanAmount/factor*float64(durationMonths) - loanAmount)
}

// loanFactor is the present value of an annuity paying 1 per period.
// Once (1+r)^n overflows the factor has reached its limit 1/r.
func loanFactor(r float64, n int) float64 {
	if r == 0 {
		return float64(n)
	}
	growth := math.Pow(1+r, float64(n))
	if math.IsInf(growth, 1) || math.IsInf(r*growth, 1) {
		return 1 / r
	}
	return (growth - 1) / (r * growth)
}

// annualPercentageRate solves P·x^(n+1) - (P+M)·x^n + M = 0 for the monthly
// growth factor x, with P the principal net of the fee. The seed is the nominal
// annual percentage itself; on failure the nominal rate is returned.
func (c *LoanCalculator) annualPercentageRate(
	loanAmount float64,
	monthlyPayment float64,
	administrationFee float64,
	durationMonths int,
) float64 {

	p := loanAmount - administrationFee
	m := monthlyPayment
	n := float64(durationMonths)

	f := func(x float64) float64 {
		return p*math.Pow(x, n+1) - (p+m)*math.Pow(x, n) + m
	}
	df := func(x float64) float64 {
		return p*(n+1)*math.Pow(x, n) - (p+m)*n*math.Pow(x, n-1)
	}

	root, err := NewtonRaphson(f, df, c.options.Interest, AprTolerance, AprMaxIterations)
	if err != nil {
		return c.options.Interest
	}
	return roundTo2Decimals(12 * (root - 1) * 100)
}

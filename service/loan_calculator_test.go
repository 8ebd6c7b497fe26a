package service

import (
	"errors"
	"math"
	"testing"

	isLib "github.com/matryer/is"

	"loan-calc/domain"
)

var referenceOptions = domain.LoanOptions{
	Interest:              5,
	AdministrationFeeRate: 1,
	AdministrationFeeMax:  10000,
}

func TestLoanCalculator_ReferenceCase(t *testing.T) {
	is := isLib.New(t)

	result, err := NewLoanCalculator(referenceOptions).Calculate(500000, 120)
	is.NoErr(err)

	is.Equal(result.AdministrationFee, 5000.0)
	is.Equal(result.MonthlyPayment, 5303.28)
	is.Equal(result.TotalInterest, 136393.09)
	is.Equal(result.AnnualPercentageRate, 5.22)
}

func TestLoanCalculator_Calculate(t *testing.T) {
	for i, testCase := range []struct {
		name           string
		options        domain.LoanOptions
		loanAmount     float64
		durationMonths int
		expected       domain.LoanResult
	}{
		{
			name:           "fee cap applied",
			options:        referenceOptions,
			loanAmount:     2000000,
			durationMonths: 120,
			expected: domain.LoanResult{
				MonthlyPayment:       21213.10,
				AdministrationFee:    10000,
				TotalInterest:        545572.37,
				AnnualPercentageRate: 5.11,
			},
		},
		{
			name:           "one year",
			options:        referenceOptions,
			loanAmount:     500000,
			durationMonths: 12,
			expected: domain.LoanResult{
				MonthlyPayment:       42803.74,
				AdministrationFee:    5000,
				TotalInterest:        13644.89,
				AnnualPercentageRate: 6.88,
			},
		},
		{
			name:           "fractional rate with low cap",
			options:        domain.LoanOptions{Interest: 7.5, AdministrationFeeRate: 2, AdministrationFeeMax: 500},
			loanAmount:     100000,
			durationMonths: 60,
			expected: domain.LoanResult{
				MonthlyPayment:       2003.79,
				AdministrationFee:    500,
				TotalInterest:        20227.69,
				AnnualPercentageRate: 7.71,
			},
		},
		{
			name:           "zero interest falls back to nominal APR",
			options:        domain.LoanOptions{Interest: 0, AdministrationFeeRate: 1, AdministrationFeeMax: 10000},
			loanAmount:     1200,
			durationMonths: 12,
			expected: domain.LoanResult{
				MonthlyPayment:       100,
				AdministrationFee:    12,
				TotalInterest:        0,
				AnnualPercentageRate: 0,
			},
		},
	} {
		result, err := NewLoanCalculator(testCase.options).Calculate(testCase.loanAmount, testCase.durationMonths)
		if err != nil {
			t.Errorf("Case #%v - %v: unexpected error: %v", i, testCase.name, err)
			continue
		}
		if result != testCase.expected {
			t.Errorf("Case #%v - %v: expected %+v, got %+v", i, testCase.name, testCase.expected, result)
		}
	}
}

func TestLoanCalculator_NonConvergenceFallsBackToNominalRate(t *testing.T) {
	is := isLib.New(t)

	// The seed 50 raised to the 241st power overflows on the first step.
	options := domain.LoanOptions{Interest: 50, AdministrationFeeRate: 1, AdministrationFeeMax: 10000}
	result, err := NewLoanCalculator(options).Calculate(10000, 240)
	is.NoErr(err)

	is.Equal(result.AnnualPercentageRate, 50.0)
	is.Equal(result.MonthlyPayment, 416.69)
	is.Equal(result.AdministrationFee, 100.0)
}

func TestLoanCalculator_FallbackKeepsUnroundedNominalRate(t *testing.T) {
	is := isLib.New(t)

	options := domain.LoanOptions{Interest: 49.999, AdministrationFeeRate: 1, AdministrationFeeMax: 10000}
	result, err := NewLoanCalculator(options).Calculate(10000, 240)
	is.NoErr(err)
	is.Equal(result.AnnualPercentageRate, 49.999)
}

func TestLoanCalculator_InvalidArguments(t *testing.T) {
	calculator := NewLoanCalculator(referenceOptions)

	for i, testCase := range []struct {
		loanAmount     float64
		durationMonths int
		expectedParam  string
	}{
		{loanAmount: 0, durationMonths: 120, expectedParam: "loanAmount"},
		{loanAmount: -1, durationMonths: 120, expectedParam: "loanAmount"},
		{loanAmount: math.NaN(), durationMonths: 120, expectedParam: "loanAmount"},
		{loanAmount: math.Inf(1), durationMonths: 120, expectedParam: "loanAmount"},
		{loanAmount: 1000, durationMonths: 0, expectedParam: "durationMonths"},
		{loanAmount: 1000, durationMonths: -12, expectedParam: "durationMonths"},
		{loanAmount: 0, durationMonths: 0, expectedParam: "loanAmount"},
	} {
		result, err := calculator.Calculate(testCase.loanAmount, testCase.durationMonths)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("Case #%v: expected ErrInvalidArgument, got: %v", i, err)
			continue
		}
		var argErr *domain.InvalidArgumentError
		if errors.As(err, &argErr) && argErr.Param != testCase.expectedParam {
			t.Errorf("Case #%v: expected param %v, got %v", i, testCase.expectedParam, argErr.Param)
		}
		if result != (domain.LoanResult{}) {
			t.Errorf("Case #%v: expected zero result, got %+v", i, result)
		}
	}
}

func TestLoanCalculator_Properties(t *testing.T) {
	calculator := NewLoanCalculator(referenceOptions)

	// Amounts start at 1: below roughly one cent per month the payment
	// rounds to 0.00, see TestLoanCalculator_SubCentPaymentRoundsToZero.
	for _, loanAmount := range []float64{1, 99.99, 1000, 123456.78, 999999, 5000000} {
		for _, durationMonths := range []int{1, 6, 12, 60, 120, 360} {
			first, err := calculator.Calculate(loanAmount, durationMonths)
			if err != nil {
				t.Fatalf("Calculate(%v, %v): unexpected error: %v", loanAmount, durationMonths, err)
			}
			if first.MonthlyPayment <= 0 {
				t.Errorf("Calculate(%v, %v): expected monthly payment > 0, got %v", loanAmount, durationMonths, first.MonthlyPayment)
			}
			expectedFee := math.Min(roundTo2Decimals(loanAmount*referenceOptions.AdministrationFeeRate/100), referenceOptions.AdministrationFeeMax)
			if first.AdministrationFee != expectedFee {
				t.Errorf("Calculate(%v, %v): expected fee %v, got %v", loanAmount, durationMonths, expectedFee, first.AdministrationFee)
			}
			second, _ := calculator.Calculate(loanAmount, durationMonths)
			if first != second {
				t.Errorf("Calculate(%v, %v): not deterministic: %+v != %+v", loanAmount, durationMonths, first, second)
			}
		}
	}
}

func TestLoanCalculator_VeryLongTerm(t *testing.T) {
	is := isLib.New(t)

	// (1+r)^n overflows float64 for this many months.
	result, err := NewLoanCalculator(referenceOptions).Calculate(500000, 1200000)
	is.NoErr(err)

	is.Equal(result.MonthlyPayment, 2083.33)
	is.Equal(result.AdministrationFee, 5000.0)
	is.True(!math.IsNaN(result.TotalInterest) && !math.IsInf(result.TotalInterest, 0))
	is.True(result.TotalInterest > 0)
	is.Equal(result.AnnualPercentageRate, 5.0) // the seed overflows, nominal rate kept

	for _, loanAmount := range []float64{1000, 123456.78, 5000000} {
		for _, durationMonths := range []int{24000, 1200000} {
			result, err := NewLoanCalculator(referenceOptions).Calculate(loanAmount, durationMonths)
			is.NoErr(err)
			is.True(result.MonthlyPayment > 0)
			is.True(!math.IsInf(result.MonthlyPayment, 0))
			is.True(!math.IsNaN(result.TotalInterest))
		}
	}
}

func TestLoanFactor_Overflow(t *testing.T) {
	is := isLib.New(t)
	r := 5.0 / 100 / 12
	is.Equal(loanFactor(r, 1200000), 1/r)
	is.Equal(loanFactor(1000.0/100/12, 5000), 1/(1000.0/100/12))
}

func TestLoanCalculator_SubCentPaymentRoundsToZero(t *testing.T) {
	is := isLib.New(t)

	// 0.01 over 120 months is about 0.0001 a month, below the rounding step.
	result, err := NewLoanCalculator(referenceOptions).Calculate(0.01, 120)
	is.NoErr(err)
	is.Equal(result.MonthlyPayment, 0.0)
}

func TestLoanFactor_ZeroRate(t *testing.T) {
	is := isLib.New(t)
	is.Equal(loanFactor(0, 24), 24.0)
	is.True(math.Abs(loanFactor(1e-9, 24)-24) < 1e-3)
}

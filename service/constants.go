package service

const (
	// APR solver bounds. Seeding with the nominal percentage needs a few
	// hundred iterations for long terms.
	AprTolerance     = 1e-8
	AprMaxIterations = 1000

	// Request limits enforced by LoanService only; the calculator accepts
	// any positive input.
	MaxLoanAmount = 1_000_000_000.0
	MaxTermMonths = 600 // 50 years
)

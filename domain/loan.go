package domain

// LoanOptions holds the rate and fee parameters of a loan product.
type LoanOptions struct {
	Interest              float64 `json:"interest"`              // annual nominal %, e.g. 5
	AdministrationFeeRate float64 `json:"administrationFeeRate"` // % of the principal
	AdministrationFeeMax  float64 `json:"administrationFeeMax"`  // absolute cap
}

// Validate checks that every option is non-negative.
func (o LoanOptions) Validate() error {
	if !(o.Interest >= 0) {
		return NewInvalidArgumentError("interest", "must not be negative")
	}
	if !(o.AdministrationFeeRate >= 0) {
		return NewInvalidArgumentError("administrationFeeRate", "must not be negative")
	}
	if !(o.AdministrationFeeMax >= 0) {
		return NewInvalidArgumentError("administrationFeeMax", "must not be negative")
	}
	return nil
}

type LoanRequest struct {
	LoanAmount     float64 `json:"loanAmount"`
	DurationMonths int     `json:"durationMonths"`
}

type LoanResult struct {
	MonthlyPayment       float64 `json:"monthlyPayment"`
	AdministrationFee    float64 `json:"administrationFee"`
	TotalInterest        float64 `json:"totalInterest"`
	AnnualPercentageRate float64 `json:"annualPercentageRate"`
}

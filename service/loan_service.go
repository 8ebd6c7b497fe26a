package service

import (
	"encoding/json"
	"fmt"
	"log"
	"math"

	"github.com/cespare/xxhash/v2"

	"loan-calc/domain"
	"loan-calc/repository"
)

type LoanService struct {
	calculator *LoanCalculator
	cache      repository.CacheRepository
}

// NewLoanService creates a LoanService for options. cache may be nil.
func NewLoanService(options domain.LoanOptions,
	cache repository.CacheRepository,
) *LoanService {
	return &LoanService{calculator: NewLoanCalculator(options), cache: cache}
}

// CalculateLoan applies the request limits, then serves the result from cache
// or computes and stores it.
func (s *LoanService) CalculateLoan(
	input domain.LoanRequest,
) (domain.LoanResult, error) {

	if input.LoanAmount > MaxLoanAmount {
		return domain.LoanResult{}, domain.NewInvalidArgumentError("loanAmount",
			fmt.Sprintf("exceeds the maximum of %.2f", MaxLoanAmount))
	}
	if input.DurationMonths > MaxTermMonths {
		return domain.LoanResult{}, domain.NewInvalidArgumentError("durationMonths",
			fmt.Sprintf("exceeds the maximum of %d months", MaxTermMonths))
	}

	key := s.cacheKey(input)
	if result, ok := s.lookup(key); ok {
		return result, nil
	}

	result, err := s.calculator.Calculate(input.LoanAmount, input.DurationMonths)
	if err != nil {
		return domain.LoanResult{}, err
	}

	// Caching is not critical
	s.store(key, result)

	return result, nil
}

func (s *LoanService) lookup(key string) (domain.LoanResult, bool) {
	if s.cache == nil {
		return domain.LoanResult{}, false
	}
	raw, ok, err := s.cache.Get(key)
	if err != nil {
		log.Printf("Warning: failed to read cached loan calculation: %v", err)
		return domain.LoanResult{}, false
	}
	if !ok {
		return domain.LoanResult{}, false
	}
	var result domain.LoanResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Printf("Warning: discarding malformed cache entry %s: %v", key, err)
		return domain.LoanResult{}, false
	}
	return result, true
}

func (s *LoanService) store(key string, result domain.LoanResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		log.Printf("Warning: failed to encode loan calculation: %v", err)
		return
	}
	if err := s.cache.Set(key, string(raw)); err != nil {
		log.Printf("Warning: failed to cache loan calculation: %v", err)
	}
}

// cacheKey fingerprints the options together with the request so that
// services configured differently never share entries.
func (s *LoanService) cacheKey(input domain.LoanRequest) string {
	o := s.calculator.Options()
	h := xxhash.New()
	for _, v := range []float64{o.Interest, o.AdministrationFeeRate, o.AdministrationFeeMax, input.LoanAmount} {
		fmt.Fprintf(h, "%x|", math.Float64bits(v))
	}
	fmt.Fprintf(h, "%d", input.DurationMonths)
	return fmt.Sprintf("loan:%016x", h.Sum64())
}

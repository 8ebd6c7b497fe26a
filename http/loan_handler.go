package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"loan-calc/domain"
	"loan-calc/service"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.LoanRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CalculateLoan(input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("[%s] Error calculating loan: %v", RequestID(r.Context()), err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Encode first so a failure does not leave a 200 header behind
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(result); err != nil {
		log.Printf("[%s] Error encoding response: %v", RequestID(r.Context()), err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[%s] Error writing response: %v", RequestID(r.Context()), err)
	}
}

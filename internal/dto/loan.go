package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
)

// ApplyLoanRequest defines the data needed to apply for a loan.
// Term bounds mirror the service-side validation; binding rejects the
// obviously malformed payloads early.
type ApplyLoanRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	TermMonths int             `json:"termMonths" binding:"required,min=3,max=60"`
}

// LoanPaymentRequest defines the data needed to repay part of a loan.
type LoanPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID            string          `json:"loanID"`
	CustomerID        string          `json:"customerID"`
	AccountID         string          `json:"accountID"`
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent"`
	TermMonths        int             `json:"termMonths"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	RemainingAmount   decimal.Decimal `json:"remainingAmount"`
	Paid              bool            `json:"paid"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ToLoanResponse converts a domain.Loan to its response DTO.
func ToLoanResponse(loan *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:            loan.LoanID,
		CustomerID:        loan.CustomerID,
		AccountID:         loan.AccountID,
		Principal:         loan.Principal,
		AnnualRatePercent: loan.AnnualRatePercent,
		TermMonths:        loan.TermMonths,
		MonthlyPayment:    loan.MonthlyPayment,
		RemainingAmount:   loan.RemainingAmount,
		Paid:              loan.Paid,
		CreatedAt:         loan.CreatedAt,
	}
}

// ToLoanResponses converts a slice of domain loans to DTOs.
func ToLoanResponses(loans []domain.Loan) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i := range loans {
		res[i] = ToLoanResponse(&loans[i])
	}
	return res
}

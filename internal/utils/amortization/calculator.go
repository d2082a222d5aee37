package amortization

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
)

// Rate policy constants. These are bank policy, not tunable at call time.
const (
	baseRatePercent           = 5
	largePrincipalRatePercent = 2 // surcharge when principal exceeds the threshold
	longTermRatePercent       = 1 // surcharge when the term exceeds the threshold
	longTermThresholdMonths   = 24
)

var largePrincipalThreshold = decimal.NewFromInt(10000)

var (
	one           = decimal.NewFromInt(1)
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
)

// RateFor returns the annual interest rate (in percent) for a loan request.
func RateFor(principal decimal.Decimal, termMonths int) decimal.Decimal {
	rate := decimal.NewFromInt(baseRatePercent)
	if principal.GreaterThan(largePrincipalThreshold) {
		rate = rate.Add(decimal.NewFromInt(largePrincipalRatePercent))
	}
	if termMonths > longTermThresholdMonths {
		rate = rate.Add(decimal.NewFromInt(longTermRatePercent))
	}
	return rate
}

// Compute derives the annual rate and the fixed monthly payment for a loan.
// The payment uses the standard amortizing-loan formula
//
//	payment = P * i * (1+i)^n / ((1+i)^n - 1)
//
// with i the monthly rate and n the term in months. At i = 0 the formula
// degenerates to 0/0, so the limit payment = P / n is used instead.
func Compute(principal decimal.Decimal, termMonths int) (decimal.Decimal, decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: term must be at least one month, got %d", apperrors.ErrInvalidTerm, termMonths)
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: principal must be positive, got %s", apperrors.ErrInvalidAmount, principal)
	}

	rate := RateFor(principal, termMonths)
	payment := monthlyPayment(principal, rate, termMonths)
	return rate, payment, nil
}

func monthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(termMonths))
	i := annualRatePercent.Div(hundred).Div(monthsPerYear)
	if i.IsZero() {
		return principal.DivRound(n, 2)
	}

	compound := one.Add(i).Pow(n)
	return principal.Mul(i).Mul(compound).DivRound(compound.Sub(one), 2)
}

// Installment is one row of an amortization schedule.
type Installment struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Remaining decimal.Decimal `json:"remaining"`
}

// Schedule expands a loan into its month-by-month repayment plan. The final
// installment absorbs the rounding drift so the schedule amortizes to exactly
// zero.
func Schedule(principal decimal.Decimal, termMonths int) ([]Installment, error) {
	rate, payment, err := Compute(principal, termMonths)
	if err != nil {
		return nil, err
	}

	i := rate.Div(hundred).Div(monthsPerYear)
	remaining := principal
	schedule := make([]Installment, 0, termMonths)
	for month := 1; month <= termMonths; month++ {
		interest := remaining.Mul(i).Round(2)
		principalPart := payment.Sub(interest)
		monthPayment := payment
		if month == termMonths {
			// Last installment settles whatever is left after rounding.
			principalPart = remaining
			monthPayment = remaining.Add(interest)
		}
		remaining = remaining.Sub(principalPart)
		schedule = append(schedule, Installment{
			Month:     month,
			Payment:   monthPayment,
			Interest:  interest,
			Principal: principalPart,
			Remaining: remaining,
		})
	}
	return schedule, nil
}

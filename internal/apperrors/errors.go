package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Money-movement error taxonomy. Every rejection below is detected before any
// balance or log mutation and surfaced synchronously to the caller.
var (
	// ErrInvalidAmount indicates a requested amount that is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidTerm indicates a loan term outside the allowed range.
	ErrInvalidTerm = errors.New("loan term is out of range")

	// ErrInsufficientFunds indicates a debit that would take an account balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotFound indicates that an account referenced by an operation does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSelfTransfer indicates a transfer whose destination resolves to its own source account.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")

	// ErrLoanNotFound indicates that a referenced loan does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrPaymentExceedsBalance indicates a loan payment larger than the loan's
	// remaining balance. Overpayments are rejected outright, never truncated.
	ErrPaymentExceedsBalance = errors.New("payment exceeds remaining loan balance")
)

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
)

// RegisterCustomerRequest defines the data needed to register a customer.
// Profile completion opens the customer's account with the initial deposit
// recorded through the ledger.
type RegisterCustomerRequest struct {
	Name           string          `json:"name" binding:"required"`
	Email          string          `json:"email" binding:"required,email"`
	Password       string          `json:"password" binding:"required,min=8"`
	InitialDeposit decimal.Decimal `json:"initialDeposit" binding:"required,decimalgt0"`
}

// LoginRequest defines the credentials for customer login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to its response DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Email:      c.Email,
		CreatedAt:  c.CreatedAt,
	}
}

// AuthResponse is returned on successful login or registration.
type AuthResponse struct {
	Token    string           `json:"token"`
	Customer CustomerResponse `json:"customer"`
}

// RegisterCustomerResponse is returned on successful registration.
type RegisterCustomerResponse struct {
	Token    string           `json:"token"`
	Customer CustomerResponse `json:"customer"`
	Account  AccountResponse  `json:"account"`
}

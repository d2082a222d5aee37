package services

import (
	"context"

	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	"github.com/aashray325/nimble-banking-hub/internal/dto"
)

// CustomerSvcFacade is the identity collaborator boundary. Downstream
// services trust the (customerID, accountID) pair it establishes.
type CustomerSvcFacade interface {
	// Register creates the customer and opens their account with the initial
	// deposit recorded through the ledger.
	Register(ctx context.Context, req dto.RegisterCustomerRequest) (*domain.Customer, *domain.Account, error)

	// Authenticate verifies the credentials and returns the customer.
	Authenticate(ctx context.Context, email string, password string) (*domain.Customer, error)

	// GetCustomerByID retrieves a customer by their unique identifier.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
}

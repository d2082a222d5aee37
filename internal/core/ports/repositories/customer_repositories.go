package repositories

import (
	"context"

	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
)

// CustomerRepository defines persistence operations for customer records.
type CustomerRepository interface {
	// SaveCustomer persists a new customer. Returns apperrors.ErrDuplicate if
	// the email is already registered.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// FindCustomerByID retrieves a customer by their unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomerByEmail retrieves a customer by their login email.
	FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

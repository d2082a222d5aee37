package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portsrepo "github.com/aashray325/nimble-banking-hub/internal/core/ports/repositories"
)

// CustomerRepository is the in-memory customer adapter.
type CustomerRepository struct {
	mu               sync.RWMutex
	customers        map[string]*domain.Customer
	customersByEmail map[string]string
}

// NewCustomerRepository creates an empty in-memory customer store.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers:        make(map[string]*domain.Customer),
		customersByEmail: make(map[string]string),
	}
}

var _ portsrepo.CustomerRepository = (*CustomerRepository)(nil)

// SaveCustomer persists a new customer.
func (r *CustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(customer.Email)
	if _, exists := r.customersByEmail[email]; exists {
		return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, customer.Email)
	}

	stored := customer
	r.customers[customer.CustomerID] = &stored
	r.customersByEmail[email] = customer.CustomerID
	return nil
}

// FindCustomerByID retrieves a customer by their unique identifier.
func (r *CustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	}
	cp := *c
	return &cp, nil
}

// FindCustomerByEmail retrieves a customer by their login email.
func (r *CustomerRepository) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.customersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("%w: email %s", apperrors.ErrNotFound, email)
	}
	cp := *r.customers[id]
	return &cp, nil
}

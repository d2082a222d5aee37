package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portsrepo "github.com/aashray325/nimble-banking-hub/internal/core/ports/repositories"
	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/dto"
	"github.com/aashray325/nimble-banking-hub/internal/middleware"
	"github.com/aashray325/nimble-banking-hub/internal/utils"
)

// customerService is the identity collaborator: registration, credential
// checks and profile completion. Completing a profile opens the customer's
// account and records the initial deposit through the ledger, so even the
// opening balance has a transaction behind it.
type customerService struct {
	customerRepo portsrepo.CustomerRepository
	ledgerRepo   portsrepo.LedgerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepository, ledgerRepo portsrepo.LedgerRepository) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// Register creates the customer and opens their account with the initial
// deposit recorded as a DEPOSIT entry from the bank boundary.
func (s *customerService) Register(ctx context.Context, req dto.RegisterCustomerRequest) (*domain.Customer, *domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	customerID := uuid.NewString()
	customer := domain.Customer{
		CustomerID:   customerID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     customerID,
			LastUpdatedAt: now,
			LastUpdatedBy: customerID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save customer", slog.String("error", err.Error()))
		}
		return nil, nil, err
	}

	account, err := s.openAccount(ctx, customerID, now)
	if err != nil {
		logger.Error("Failed to open account for new customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, nil, err
	}

	if _, err := s.ledgerRepo.AtomicTransfer(ctx, nil, &account.AccountID, req.InitialDeposit, domain.KindDeposit, "Initial deposit", customerID); err != nil {
		return nil, nil, fmt.Errorf("failed to record initial deposit: %w", err)
	}

	// Re-fetch so the returned account carries the deposited balance.
	account, err = s.ledgerRepo.FindAccountByID(ctx, account.AccountID)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Customer registered",
		slog.String("customer_id", customerID),
		slog.String("account_id", account.AccountID),
		slog.String("initial_deposit", req.InitialDeposit.String()),
	)
	return &customer, account, nil
}

// Authenticate verifies the credentials and returns the customer. The same
// unauthorized error is returned for unknown emails and bad passwords so the
// endpoint does not leak which emails are registered.
func (s *customerService) Authenticate(ctx context.Context, email string, password string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, customer.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return customer, nil
}

// GetCustomerByID retrieves a customer by their unique identifier.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) openAccount(ctx context.Context, customerID string, now time.Time) (*domain.Account, error) {
	number, err := utils.GenerateAccountNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account number: %w", err)
	}

	account := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: number,
		CustomerID:    customerID,
		Status:        domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     customerID,
			LastUpdatedAt: now,
			LastUpdatedBy: customerID,
		},
	}
	if err := s.ledgerRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

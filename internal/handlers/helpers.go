package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/middleware"
)

// respondError maps the service error taxonomy onto HTTP status codes and
// writes the error response. Rejections surface verbatim; unexpected errors
// are masked behind a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidTerm),
		errors.Is(err, apperrors.ErrSelfTransfer),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrPaymentExceedsBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrLoanNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ownedAccount resolves the :accountID path parameter to an account owned by
// the authenticated customer. Foreign accounts are reported as not found so
// the endpoint does not leak which account IDs exist. Writes the error
// response itself and returns false when the caller should stop.
func ownedAccount(c *gin.Context, accountService portssvc.AccountSvcFacade) (*domain.Account, bool) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	account, err := accountService.GetAccount(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if account.CustomerID != customerID {
		c.JSON(http.StatusNotFound, gin.H{"error": apperrors.ErrAccountNotFound.Error()})
		return nil, false
	}
	return account, true
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aashray325/nimble-banking-hub/internal/apperrors"
	"github.com/aashray325/nimble-banking-hub/internal/core/domain"
	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/dto"
	"github.com/aashray325/nimble-banking-hub/internal/middleware"
)

// loanHandler handles loan applications, repayments and lookups.
type loanHandler struct {
	loanService    portssvc.LoanSvcFacade
	accountService portssvc.AccountSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade, as portssvc.AccountSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls, accountService: as}
}

func registerLoanRoutes(rg *gin.RouterGroup, ls portssvc.LoanSvcFacade, as portssvc.AccountSvcFacade, rateLimit gin.HandlerFunc) {
	h := newLoanHandler(ls, as)

	loans := rg.Group("/loans")
	{
		loans.POST("", rateLimit, h.applyForLoan)
		loans.GET("", h.listLoans)
		loans.GET("/active", h.hasActiveLoans)
		loans.GET("/:loanID", h.getLoan)
		loans.GET("/:loanID/schedule", h.paymentSchedule)
		loans.POST("/:loanID/payments", rateLimit, h.makePayment)
	}
}

// applyForLoan validates the application and disburses the principal into
// the caller's account. Applications are auto-approved.
func (h *loanHandler) applyForLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ApplyLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for loan application", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	loan, err := h.loanService.ApplyForLoan(c.Request.Context(), customerID, req.Amount, req.TermMonths)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// listLoans returns all loans of the authenticated customer.
func (h *loanHandler) listLoans(c *gin.Context) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loans, err := h.accountService.ListLoansByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": dto.ToLoanResponses(loans)})
}

// hasActiveLoans reports whether the customer has any unpaid loan.
func (h *loanHandler) hasActiveLoans(c *gin.Context) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	active, err := h.accountService.HasActiveLoans(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasActiveLoans": active})
}

// getLoan returns one loan, provided the caller owns it.
func (h *loanHandler) getLoan(c *gin.Context) {
	loan, ok := h.ownedLoan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// paymentSchedule returns the loan's month-by-month repayment plan.
func (h *loanHandler) paymentSchedule(c *gin.Context) {
	loan, ok := h.ownedLoan(c)
	if !ok {
		return
	}

	schedule, err := h.loanService.PaymentSchedule(c.Request.Context(), loan.LoanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loanID": loan.LoanID, "schedule": schedule})
}

// makePayment repays part of the caller's loan.
func (h *loanHandler) makePayment(c *gin.Context) {
	loan, ok := h.ownedLoan(c)
	if !ok {
		return
	}

	var req dto.LoanPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customerID, _ := middleware.GetCustomerIDFromContext(c)
	updated, err := h.loanService.MakeLoanPayment(c.Request.Context(), loan.LoanID, req.Amount, customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(updated))
}

// ownedLoan resolves :loanID to a loan owned by the authenticated customer.
// Foreign loans are reported as not found.
func (h *loanHandler) ownedLoan(c *gin.Context) (*domain.Loan, bool) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	loan, err := h.accountService.GetLoan(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if loan.CustomerID != customerID {
		c.JSON(http.StatusNotFound, gin.H{"error": apperrors.ErrLoanNotFound.Error()})
		return nil, false
	}
	return loan, true
}

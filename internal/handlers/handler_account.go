package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/dto"
	"github.com/aashray325/nimble-banking-hub/internal/middleware"
)

// accountHandler serves the read-only account projections.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade) {
	h := newAccountHandler(as)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/transactions", h.listTransactions)
	}
}

// listAccounts returns the authenticated customer's accounts.
func (h *accountHandler) listAccounts(c *gin.Context) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accounts, err := h.accountService.ListAccountsByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}

// getAccount returns one account, provided the caller owns it.
func (h *accountHandler) getAccount(c *gin.Context) {
	account, ok := ownedAccount(c, h.accountService)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listTransactions returns the account's ledger history, most recent first.
func (h *accountHandler) listTransactions(c *gin.Context) {
	account, ok := ownedAccount(c, h.accountService)
	if !ok {
		return
	}

	txns, err := h.accountService.ListTransactions(c.Request.Context(), account.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(txns)})
}

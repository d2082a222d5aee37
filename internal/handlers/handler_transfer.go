package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/dto"
	"github.com/aashray325/nimble-banking-hub/internal/middleware"
)

// transferHandler handles the money-moving endpoints.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
	accountService  portssvc.AccountSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade, as portssvc.AccountSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts, accountService: as}
}

func registerTransferRoutes(rg *gin.RouterGroup, ts portssvc.TransferSvcFacade, as portssvc.AccountSvcFacade, rateLimit gin.HandlerFunc) {
	h := newTransferHandler(ts, as)

	accounts := rg.Group("/accounts", rateLimit)
	{
		accounts.POST("/:accountID/transfers", h.transfer)
		accounts.POST("/:accountID/deposits", h.deposit)
		accounts.POST("/:accountID/withdrawals", h.withdraw)
	}
}

// transfer moves money from the caller's account to another account
// identified by its number.
func (h *transferHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, ok := ownedAccount(c, h.accountService)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transferService.Transfer(c.Request.Context(), account.AccountID, req.ToAccountNumber, req.Amount, req.Description, account.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// deposit credits the caller's account from the bank boundary.
func (h *transferHandler) deposit(c *gin.Context) {
	account, ok := ownedAccount(c, h.accountService)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transferService.Deposit(c.Request.Context(), account.AccountID, req.Amount, account.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// withdraw debits the caller's account to the bank boundary.
func (h *transferHandler) withdraw(c *gin.Context) {
	account, ok := ownedAccount(c, h.accountService)
	if !ok {
		return
	}

	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transferService.Withdraw(c.Request.Context(), account.AccountID, req.Amount, account.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

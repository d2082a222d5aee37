package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/dto"
	"github.com/aashray325/nimble-banking-hub/internal/middleware"
	"github.com/aashray325/nimble-banking-hub/internal/platform/config"
	"github.com/aashray325/nimble-banking-hub/internal/utils"
)

// authHandler handles customer registration and login.
type authHandler struct {
	customerService portssvc.CustomerSvcFacade
	cfg             *config.Config
}

func newAuthHandler(cs portssvc.CustomerSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{customerService: cs, cfg: cfg}
}

func registerAuthRoutes(rg *gin.RouterGroup, cs portssvc.CustomerSvcFacade, cfg *config.Config) {
	h := newAuthHandler(cs, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

// register creates a customer, opens their account with the initial deposit
// and returns a token so the client is logged in immediately.
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, account, err := h.customerService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(customer.CustomerID, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to issue token after registration", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterCustomerResponse{
		Token:    token,
		Customer: dto.ToCustomerResponse(customer),
		Account:  dto.ToAccountResponse(account),
	})
}

// login verifies credentials and issues a token.
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.customerService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(customer.CustomerID, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to issue token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:    token,
		Customer: dto.ToCustomerResponse(customer),
	})
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/middleware"
	"github.com/aashray325/nimble-banking-hub/internal/platform/config"
	"github.com/aashray325/nimble-banking-hub/internal/platform/observability"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
	metrics *observability.Metrics,
) {
	registerCustomValidators()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	if metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	}

	// Public authentication routes
	public := r.Group("/api/v1")
	registerAuthRoutes(public, services.Customer, cfg)

	// Authenticated API routes
	setupAPIV1Routes(r, cfg, services, limiterInstance)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// entity-specific route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	rateLimit := noopMiddleware
	if limiterInstance != nil {
		rateLimit = middleware.RateLimit(limiterInstance)
	}

	registerAccountRoutes(v1, services.Account)
	registerTransferRoutes(v1, services.Transfer, services.Account, rateLimit)
	registerLoanRoutes(v1, services.Loan, services.Account, rateLimit)
}

func noopMiddleware(c *gin.Context) {
	c.Next()
}

// registerCustomValidators installs the decimalgt0 rule used by the money
// request DTOs: the bound decimal must be strictly positive.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("decimalgt0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return d.IsPositive()
	})
}

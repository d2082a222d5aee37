package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// customerIDKey is the key used to store the authenticated customer's ID.
const customerIDKey = contextKey("customerID")

// GetCustomerIDFromContext retrieves the authenticated customer ID from the
// Gin context. It returns the ID and a boolean indicating if it was found.
func GetCustomerIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(customerIDKey)); exists {
		if id, ok := v.(string); ok {
			return id, true
		}
		return "", false
	}
	// Check the request context as well; the auth middleware stores it there
	// for code that only sees a context.Context.
	if v := c.Request.Context().Value(customerIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id, true
		}
	}
	return "", false
}

// WithCustomerID returns a context carrying the customer ID. Used by tests
// and by the auth middleware.
func WithCustomerID(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, customerIDKey, customerID)
}

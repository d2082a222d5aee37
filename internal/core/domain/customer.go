package domain

// Customer represents a registered bank customer. The core trusts the
// authenticated (customerID, accountID) pair supplied by the identity layer
// and performs no further authentication itself.
type Customer struct {
	CustomerID   string `json:"customerID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
}

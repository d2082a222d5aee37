package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateAccountNumber produces a random 10-digit account number.
// Uniqueness is enforced by the repository layer, not here.
func GenerateAccountNumber() (string, error) {
	// 10 digits, never leading zero: [1000000000, 9999999999]
	max := big.NewInt(9_000_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1_000_000_000), nil
}

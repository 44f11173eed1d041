package models

import (
	"crypto/rand"
	"math/big"
)

const (
	confirmationCodeLength   = 8
	confirmationCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewConfirmationCode returns a random 8-character uppercase alphanumeric code.
// Codes are not checked for uniqueness.
func NewConfirmationCode() (string, error) {
	code := make([]byte, confirmationCodeLength)
	limit := big.NewInt(int64(len(confirmationCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		code[i] = confirmationCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

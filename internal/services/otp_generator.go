package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DigitsAlphabet is the default OTP alphabet.
const DigitsAlphabet = "0123456789"

// GenerateOTP produces a fixed-length code drawn uniformly from the given
// alphabet using a cryptographically strong source.
func GenerateOTP(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("otp length must be positive, got %d", length)
	}
	if len(alphabet) == 0 {
		return "", fmt.Errorf("otp alphabet must not be empty")
	}

	max := big.NewInt(int64(len(alphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		code[i] = alphabet[n.Int64()]
	}

	return string(code), nil
}

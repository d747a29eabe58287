package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// OrderIDLength matches the short codes printed on receipts, e.g. A7XK9M2.
	OrderIDLength = 7
)

// GenerateCode returns a random upper-case alphanumeric code of length n.
func GenerateCode(n int) (string, error) {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[idx.Int64()]
	}
	return string(buf), nil
}

func GenerateOrderID() (string, error) {
	return GenerateCode(OrderIDLength)
}

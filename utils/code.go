package utils

import (
	"crypto/rand"
	mathrand "math/rand/v2"
)

const (
	orderNumberMin = 100000
	orderNumberMax = 999999
)

func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateOrderNumber returns a six digit number for display on receipts.
// Numbers are not checked for collisions.
func GenerateOrderNumber() int {
	return orderNumberMin + mathrand.IntN(orderNumberMax-orderNumberMin+1)
}

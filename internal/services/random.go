package services

import (
	"crypto/rand"
	"math/big"
)

const randomAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns a crypto-sourced lowercase alphanumeric string.
// Used for invitation tokens and username suffixes, so predictability
// matters.
func RandomString(length int) string {
	out := make([]byte, length)
	max := big.NewInt(int64(len(randomAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// nothing sensible to do but stop.
			panic(err)
		}
		out[i] = randomAlphabet[n.Int64()]
	}
	return string(out)
}

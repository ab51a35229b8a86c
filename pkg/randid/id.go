// Package randid generates short random identifiers for run tracking.
package randid

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate returns a random lowercase alphanumeric string of the given length.
func Generate(length int) string {
	b := make([]byte, length)
	size := big.NewInt(int64(len(alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			// crypto/rand failures are not recoverable here; fall back
			// to a fixed character rather than panic in CLI paths.
			b[i] = alphabet[0]
			continue
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}

package bookings

import (
	"crypto/rand"
	"math/big"
)

const (
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength   = 8
)

// GenerateBookingReference returns an 8-character uppercase alphanumeric
// reference. Uniqueness is enforced by the database index, not here; the
// caller retries on collision.
func GenerateBookingReference() (string, error) {
	ref := make([]byte, referenceLength)
	for i := range ref {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
		if err != nil {
			return "", err
		}
		ref[i] = referenceAlphabet[num.Int64()]
	}
	return string(ref), nil
}

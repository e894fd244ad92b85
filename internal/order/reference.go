package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber builds a practically unique order number without a
// coordination round-trip: millisecond timestamp plus a 3-digit
// cryptographic random suffix. The value is also used as the payment
// gateway reference.
func GenerateOrderNumber() string {
	now := time.Now()

	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 1000)
	}

	return fmt.Sprintf("EC-%d-%03d", now.UnixMilli(), n.Int64())
}

package checkout

import (
	"crypto/rand"
	"fmt"
)

// NewOrderNumber returns a human-shareable short code of the form
// "#XXX-XXX" (uppercase hex). Three random bytes give ~16.7M codes, so the
// unique index on orders.number plus one regenerate-and-retry covers the
// collision case.
func NewOrderNumber() (string, error) {
	var buf [3]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("reading order number entropy: %w", err)
	}
	hexed := fmt.Sprintf("%02X%02X%02X", buf[0], buf[1], buf[2])
	return fmt.Sprintf("#%s-%s", hexed[:3], hexed[3:]), nil
}

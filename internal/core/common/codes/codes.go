// Package codes generates the short server-assigned reference codes carried
// by departments and projects. Codes are read-only for API clients.
package codes

import (
	"fmt"
	"math/rand"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxAttempts bounds the uniqueness retry loop; with 36^4 possibilities a
// collision streak this long means the keyspace is effectively exhausted.
const maxAttempts = 100

// Generate returns a random uppercase alphanumeric code of the given length
// that the exists check does not know about yet.
func Generate(length int, exists func(code string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		buf := make([]byte, length)
		for i := range buf {
			buf[i] = alphabet[rand.Intn(len(alphabet))]
		}
		code := string(buf)

		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not find a free %d-char code after %d attempts", length, maxAttempts)
}

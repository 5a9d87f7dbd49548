package mockgen

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// formatDefault returns a representative literal for a known JSON Schema
// string format, grounded on the format-aware string defaults observed in
// the reference renderer's DiveIntoSchema string-type branch. ok is false
// for an unrecognized format, in which case the caller falls back to a
// plain random word.
func formatDefault(rng *rand.Rand, format string) (string, bool) {
	switch format {
	case "date-time":
		return "2024-01-15T09:30:00Z", true
	case "date":
		return "2024-01-15", true
	case "time":
		return "09:30:00Z", true
	case "email":
		return randomWord(rng, 4, 8) + "@" + randomWord(rng, 3, 7) + ".com", true
	case "hostname":
		return randomWord(rng, 3, 8) + ".example.com", true
	case "ipv4":
		return fmt.Sprintf("%d.%d.%d.%d", rng.Intn(256), rng.Intn(256), rng.Intn(256), rng.Intn(256)), true
	case "ipv6":
		return "2001:db8::" + fmt.Sprintf("%x", rng.Intn(65536)), true
	case "uri", "uri-reference":
		return "https://example.com/" + randomWord(rng, 3, 10), true
	case "uuid":
		return uuid.NewString(), true
	case "byte":
		return "aGVsbG8=", true
	case "password":
		return randomWord(rng, 8, 16), true
	case "binary":
		return "<binary>", true
	default:
		return "", false
	}
}

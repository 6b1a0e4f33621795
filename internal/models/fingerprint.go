package models

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the given parts into a stable 16-char hex content key.
func Fingerprint(parts ...string) string {
	h := xxhash.New()
	for i, p := range parts {
		if i > 0 {
			_, _ = h.WriteString("\x1f")
		}
		_, _ = h.WriteString(strings.ToLower(strings.TrimSpace(p)))
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// OddsBucket rounds decimal odds to the nearest 0.05 so that tiny price
// ticks of the same opportunity share a fingerprint.
func OddsBucket(decimalOdds float64) string {
	bucket := int64(decimalOdds*20 + 0.5)
	return strconv.FormatInt(bucket, 10)
}

// FormatLine renders an optional line for fingerprints and keys
func FormatLine(line *float64) string {
	if line == nil {
		return ""
	}
	return strconv.FormatFloat(*line, 'f', -1, 64)
}

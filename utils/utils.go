package utils

import (
	"fmt"
	rndm "math/rand"
	"strconv"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

func GetUUID() string {
	return uuid.New().String()
}

// --- Numeric Field Parsing ---
//
// Optional numeric fields arrive as JSON numbers or strings. A present but
// malformed value is rejected instead of passed through as NaN.

// ParseOptionalFloat returns nil when raw is absent, the parsed value when
// valid, and an error naming the field otherwise.
func ParseOptionalFloat(field string, raw interface{}) (*float64, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case float64:
		return &v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", field, v)
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("invalid value for %s", field)
	}
}

// ParseOptionalInt is ParseOptionalFloat for integer fields.
func ParseOptionalInt(field string, raw interface{}) (*int, error) {
	f, err := ParseOptionalFloat(field, raw)
	if err != nil || f == nil {
		return nil, err
	}
	n := int(*f)
	return &n, nil
}

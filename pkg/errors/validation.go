package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxKeyLength bounds node keys accepted from drafts and API callers.
const MaxKeyLength = 256

// ValidateKey validates a node key supplied by a caller.
// Keys identify rendered content, so they must be printable and bounded:
//   - No empty keys
//   - No control characters or null bytes
//   - Maximum length of MaxKeyLength bytes
//   - No leading or trailing whitespace
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}

	if len(key) > MaxKeyLength {
		return New(ErrCodeInvalidKey, "key too long (max %d characters)", MaxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key %q contains invalid control characters", key)
		}
	}

	if strings.TrimSpace(key) != key {
		return New(ErrCodeInvalidKey, "key %q has surrounding whitespace", key)
	}

	return nil
}

// ValidateDimension validates a container size component.
// Zero is allowed (an empty region); negative and non-finite values are not.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || v > 1e15 || v < -1e15 {
		return New(ErrCodeInvalidInput, "%s is not a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative (got %g)", name, v)
	}
	return nil
}

// ValidateDelta validates a signed change such as a divider drag or a scale
// step. Any finite value is allowed.
func ValidateDelta(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s is not a finite number", name)
	}
	return nil
}

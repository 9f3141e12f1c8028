package book

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrISBNFormat is returned when an ISBN contains a character that is
	// neither a digit nor a separator (hyphen, space, period).
	ErrISBNFormat = errors.New("isbn must contain only digits and optional separators")

	// ErrISBNLength is returned when a stripped ISBN is not 10 or 13 digits.
	ErrISBNLength = errors.New("isbn must be exactly 10 or 13 digits")
)

// NormalizeISBN strips hyphens, spaces and periods from raw and returns the
// canonical digit-only form. An empty input means "no ISBN" and passes
// through unchanged. Only the character class and length are checked; no
// checksum validation is performed.
func NormalizeISBN(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == ' ' || r == '.':
			// separator, dropped
		default:
			return "", fmt.Errorf("%w: got %q", ErrISBNFormat, raw)
		}
	}

	normalized := b.String()
	if len(normalized) != 10 && len(normalized) != 13 {
		return "", fmt.Errorf("%w: got %d digits", ErrISBNLength, len(normalized))
	}
	return normalized, nil
}

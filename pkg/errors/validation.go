package errors

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ValidateMagnitude validates a raw magnitude entered by the user.
// It rejects zero, negative, NaN and infinite values. Zero is not an
// acceptable area or distance: the visualization would degenerate, so it
// is surfaced here rather than silently clamped.
func ValidateMagnitude(v float64) error {
	if math.IsNaN(v) {
		return New(ErrCodeNonPositiveMeasurement, "magnitude is NaN")
	}
	if math.IsInf(v, 0) {
		return New(ErrCodeNonPositiveMeasurement, "magnitude is infinite")
	}
	if v <= 0 {
		return New(ErrCodeNonPositiveMeasurement, "magnitude must be positive, got %g", v)
	}
	return nil
}

// ParseMagnitude parses a user-entered numeric string and validates it.
// Thousands separators (commas and spaces) are tolerated since the values
// in question routinely run to millions of square kilometers.
func ParseMagnitude(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return 0, New(ErrCodeInvalidInput, "magnitude cannot be empty")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, New(ErrCodeInvalidInput, "magnitude %q is not numeric", s)
	}
	if err := ValidateMagnitude(v); err != nil {
		return 0, err
	}
	return v, nil
}

// ValidateCountryName validates a country name for lookup against the
// embedded dataset. Country names are display labels, so only basic
// hygiene is enforced here; existence is checked by the dataset itself.
func ValidateCountryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "country name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "country name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "country name contains control characters")
		}
	}
	return nil
}

// ValidateOutputBase validates an output base path for artifact export.
// It ensures the path carries no null bytes or control characters; the
// filesystem enforces everything else.
func ValidateOutputBase(path string) error {
	if path == "" {
		return nil // empty means "derive from level labels"
	}
	for _, r := range path {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}
	return nil
}

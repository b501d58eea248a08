package query

import (
	"math"
	"strconv"
	"strings"

	"stayhub/internal/domain"
)

// ParseInt parses a caller-supplied integer.
func ParseInt(name, raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: name, Value: raw, Reason: "must be an integer"}
	}
	return n, nil
}

// ParseID parses a positive record identifier.
func ParseID(name, raw string) (int64, error) {
	n, err := ParseInt(name, raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, &domain.ValidationError{Field: name, Value: raw, Reason: "must be a positive integer"}
	}
	return n, nil
}

// ParseFloat parses a caller-supplied finite number.
func ParseFloat(name, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &domain.ValidationError{Field: name, Value: raw, Reason: "must be a number"}
	}
	return f, nil
}

// OptionalID parses raw when it is non-blank.
func OptionalID(name, raw string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	n, err := ParseID(name, raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

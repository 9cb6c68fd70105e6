package lexer

import (
	"fmt"
	"math"
)

type IntErrorReason int

const (
	IntEmpty IntErrorReason = iota
	IntOverflow
	IntInvalidDigit
)

type ParseIntError struct {
	Reason IntErrorReason

	// only set for IntInvalidDigit
	Char  rune
	Radix int
}

func (e *ParseIntError) Error() string {
	switch e.Reason {
	case IntEmpty:
		return "empty int literal"
	case IntOverflow:
		return "int literal out of range"
	case IntInvalidDigit:
		return fmt.Sprintf("invalid digit %q for base %d", e.Char, e.Radix)
	}

	return "invalid int literal"
}

func digitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 10, true
	}

	return 0, false
}

func isDigit(r rune, radix int) bool {
	v, ok := digitValue(r)
	return ok && v < radix
}

// parseDigits folds ASCII digits of the given radix into an int64, skipping
// '_' separators. The digits must already have been validated.
func parseDigits(digits string, radix int) (int64, *ParseIntError) {
	var (
		val  int64
		seen bool
	)

	for i := 0; i < len(digits); i++ {
		if digits[i] == '_' {
			continue
		}
		seen = true

		d, _ := digitValue(rune(digits[i]))

		if val > (math.MaxInt64-int64(d))/int64(radix) {
			return 0, &ParseIntError{Reason: IntOverflow}
		}
		val = val*int64(radix) + int64(d)
	}

	if !seen {
		return 0, &ParseIntError{Reason: IntEmpty}
	}

	return val, nil
}

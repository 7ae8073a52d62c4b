package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseIntervalMinutes parses user input as a repeat interval in minutes.
// Surrounding whitespace is ignored. The result is a positive finite number.
func ParseIntervalMinutes(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, NewValidationError(FieldInterval, text, "enter a positive number of minutes")
	}
	// ParseFloat also takes hex floats such as "0x1p2"; only decimals are minutes.
	if strings.ContainsAny(trimmed, "xX") {
		return 0, NewValidationError(FieldInterval, text, "not a number")
	}
	minutes, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, NewValidationError(FieldInterval, text, "not a number")
	}
	if reason := intervalProblem(minutes); reason != "" {
		return 0, NewValidationError(FieldInterval, text, reason)
	}
	return minutes, nil
}

// ValidateIntervalMinutes checks that minutes is positive and finite.
func ValidateIntervalMinutes(minutes float64) error {
	if reason := intervalProblem(minutes); reason != "" {
		return NewValidationError(FieldInterval, FormatMinutes(minutes), reason)
	}
	return nil
}

func intervalProblem(minutes float64) string {
	switch {
	case math.IsNaN(minutes) || math.IsInf(minutes, 0):
		return "must be a finite number"
	case minutes <= 0:
		return "must be greater than zero"
	case MinutesToDuration(minutes) <= 0:
		return "too short"
	}
	return ""
}

// MinutesToDuration converts fractional minutes to a duration.
// Values beyond the duration range saturate.
func MinutesToDuration(minutes float64) time.Duration {
	ns := minutes * float64(time.Minute)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

// FormatMinutes renders minutes with the shortest exact decimal form.
func FormatMinutes(minutes float64) string {
	return strconv.FormatFloat(minutes, 'f', -1, 64)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	MinTermMonths   = 1
	MaxTermMonths   = 600 // 50 years
	MaxRatePct      = 100.0
	MaxYears        = 100
	MaxAmount       = 1_000_000_000_000.0
	dateLayout      = "2006-01-02"
	defaultCategory = "Uncategorized"
)

func validateAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s must be a non-negative number", field)
	}
	if v > MaxAmount {
		return fmt.Errorf("%s is too large", field)
	}
	return nil
}

func validateRate(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > MaxRatePct {
		return fmt.Errorf("%s must be between 0 and %g", field, MaxRatePct)
	}
	return nil
}

func validateTerm(field string, months int) error {
	if months < MinTermMonths || months > MaxTermMonths {
		return fmt.Errorf("%s must be between %d and %d", field, MinTermMonths, MaxTermMonths)
	}
	return nil
}

// validateDate accepts an empty string or a YYYY-MM-DD date
func validateDate(field, v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, v); err != nil {
		return fmt.Errorf("%s must be a YYYY-MM-DD date", field)
	}
	return nil
}

// firstError returns the first non-nil error
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a unique constraint failure on
// either supported database.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"fmt"
	"math"
)

const (
	DefaultMaxDTIRatio      = 0.40
	DefaultFunRatio         = 0.15
	DefaultGoalReserveRatio = 0.20
	DefaultCPIRate          = 7.0  // annual %, Bangladesh estimate
	DefaultMaxPayoffMonths  = 1200 // 100 years

	maxCPIRate         = 100.0
	maxPayoffMonthsCap = 10 * DefaultMaxPayoffMonths
)

// StressScenario is a what-if shock applied to an affordability estimate.
// RateDeltaPct is added to the annual rate in percentage points and
// IncomeMultiplier scales monthly income.
type StressScenario struct {
	Label            string  `json:"label" yaml:"label" toml:"label"`
	RateDeltaPct     float64 `json:"rate_delta_pct" yaml:"rate_delta_pct" toml:"rate_delta_pct"`
	IncomeMultiplier float64 `json:"income_multiplier" yaml:"income_multiplier" toml:"income_multiplier"`
}

// DefaultStressScenarios returns the two standard shocks: rates up two
// percentage points, and income down ten percent.
func DefaultStressScenarios() []StressScenario {
	return []StressScenario{
		{Label: "Interest rate +2%", RateDeltaPct: 2, IncomeMultiplier: 1},
		{Label: "Income -10%", RateDeltaPct: 0, IncomeMultiplier: 0.9},
	}
}

// Settings carries the tunable guardrails used by the calculators.
type Settings struct {
	MaxDTIRatio      float64
	FunRatio         float64
	GoalReserveRatio float64
	DefaultCPIRate   float64
	MaxPayoffMonths  int
	StressScenarios  []StressScenario
}

// DefaultSettings returns the production defaults.
func DefaultSettings() Settings {
	return Settings{
		MaxDTIRatio:      DefaultMaxDTIRatio,
		FunRatio:         DefaultFunRatio,
		GoalReserveRatio: DefaultGoalReserveRatio,
		DefaultCPIRate:   DefaultCPIRate,
		MaxPayoffMonths:  DefaultMaxPayoffMonths,
		StressScenarios:  DefaultStressScenarios(),
	}
}

// Validate reports the first out-of-range field. Comparisons are written
// so that NaN fails every range check.
func (s Settings) Validate() error {
	if !(s.MaxDTIRatio > 0 && s.MaxDTIRatio <= 1) {
		return fmt.Errorf("%w: max DTI ratio must be in (0, 1], got %v", ErrInvalidArgument, s.MaxDTIRatio)
	}
	if !inUnitRange(s.FunRatio) {
		return fmt.Errorf("%w: fun ratio must be in [0, 1], got %v", ErrInvalidArgument, s.FunRatio)
	}
	if !inUnitRange(s.GoalReserveRatio) {
		return fmt.Errorf("%w: goal reserve ratio must be in [0, 1], got %v", ErrInvalidArgument, s.GoalReserveRatio)
	}
	if !(s.DefaultCPIRate >= 0 && s.DefaultCPIRate <= maxCPIRate) {
		return fmt.Errorf("%w: default CPI rate must be in [0, %v], got %v", ErrInvalidArgument, maxCPIRate, s.DefaultCPIRate)
	}
	// 0 falls back to DefaultMaxPayoffMonths
	if s.MaxPayoffMonths < 0 || s.MaxPayoffMonths > maxPayoffMonthsCap {
		return fmt.Errorf("%w: max payoff months must be in [0, %d], got %d", ErrInvalidArgument, maxPayoffMonthsCap, s.MaxPayoffMonths)
	}
	for _, sc := range s.StressScenarios {
		if sc.Label == "" {
			return fmt.Errorf("%w: stress scenario label is required", ErrInvalidArgument)
		}
		if math.IsNaN(sc.RateDeltaPct) || math.IsInf(sc.RateDeltaPct, 0) {
			return fmt.Errorf("%w: stress scenario %q has a non-finite rate delta", ErrInvalidArgument, sc.Label)
		}
		if !(sc.IncomeMultiplier >= 0) || math.IsInf(sc.IncomeMultiplier, 0) {
			return fmt.Errorf("%w: stress scenario %q needs a finite, non-negative income multiplier", ErrInvalidArgument, sc.Label)
		}
	}
	return nil
}

func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}

func (s Settings) scenarios() []StressScenario {
	if len(s.StressScenarios) == 0 {
		return DefaultStressScenarios()
	}
	return s.StressScenarios
}

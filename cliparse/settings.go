// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/peak-finance/finance"
)

// settingsFile mirrors finance.Settings with optional fields so a file only
// overrides what it mentions.
type settingsFile struct {
	MaxDTIRatio      *float64                 `yaml:"max_dti_ratio" toml:"max_dti_ratio"`
	FunRatio         *float64                 `yaml:"default_fun_ratio" toml:"default_fun_ratio"`
	GoalReserveRatio *float64                 `yaml:"goal_reserve_ratio" toml:"goal_reserve_ratio"`
	DefaultCPIRate   *float64                 `yaml:"default_cpi_rate" toml:"default_cpi_rate"`
	MaxPayoffMonths  *int                     `yaml:"max_payoff_months" toml:"max_payoff_months"`
	StressScenarios  []finance.StressScenario `yaml:"stress_scenarios" toml:"stress_scenarios"`
}

// LoadSettingsFile applies a YAML (.yaml, .yml) or TOML (.toml) settings
// file on top of settings.
func LoadSettingsFile(path string, settings *finance.Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading settings file: %w", err)
	}

	var file settingsFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		return fmt.Errorf("unsupported settings file extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("parsing settings file: %w", err)
	}

	if file.MaxDTIRatio != nil {
		settings.MaxDTIRatio = *file.MaxDTIRatio
	}
	if file.FunRatio != nil {
		settings.FunRatio = *file.FunRatio
	}
	if file.GoalReserveRatio != nil {
		settings.GoalReserveRatio = *file.GoalReserveRatio
	}
	if file.DefaultCPIRate != nil {
		settings.DefaultCPIRate = *file.DefaultCPIRate
	}
	if file.MaxPayoffMonths != nil {
		settings.MaxPayoffMonths = *file.MaxPayoffMonths
	}
	if len(file.StressScenarios) > 0 {
		settings.StressScenarios = file.StressScenarios
	}
	return nil
}

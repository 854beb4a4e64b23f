package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{
			name:   "empty timesheet dir",
			mutate: func(cfg *Config) { cfg.Storage.TimesheetDir = "" },
		},
		{
			name:   "empty payslip dir",
			mutate: func(cfg *Config) { cfg.Storage.PayslipDir = "" },
		},
		{
			name:   "empty company name",
			mutate: func(cfg *Config) { cfg.Company.Name = "" },
		},
		{
			name:   "zero concurrency",
			mutate: func(cfg *Config) { cfg.Worker.Concurrency = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestCalculatorConfig_BracketConversion(t *testing.T) {
	payCfg := PayrollConfig{
		Allowance: 500,
		TaxBrackets: []TaxBracket{
			{Limit: 1000, Rate: 0.10},
			{Limit: 3000, Rate: 0.12},
			{Limit: 0, Rate: 0.24}, // unbounded top bracket
		},
	}

	cfg := payCfg.CalculatorConfig()

	require.Len(t, cfg.Brackets, 3)
	assert.Equal(t, 1000.0, cfg.Brackets[0].Limit)
	assert.Equal(t, 3000.0, cfg.Brackets[1].Limit)
	assert.True(t, math.IsInf(cfg.Brackets[2].Limit, 1))
	assert.Equal(t, 0.24, cfg.Brackets[2].Rate)
}

func TestCalculatorConfig_EmptyBracketsFallBackToDefaults(t *testing.T) {
	cfg := (&PayrollConfig{}).CalculatorConfig()
	require.NotEmpty(t, cfg.Brackets)
	assert.True(t, math.IsInf(cfg.Brackets[len(cfg.Brackets)-1].Limit, 1))
}

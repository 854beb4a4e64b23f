package payroll

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	return calc
}

func TestProgressiveTax_MarginalRates(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name     string
		gross    float64
		expected float64
	}{
		{
			name:     "zero gross pays no tax",
			gross:    0,
			expected: 0,
		},
		{
			name:     "inside first bracket",
			gross:    500,
			expected: 50,
		},
		{
			name:     "exactly at first bracket limit",
			gross:    1000,
			expected: 100,
		},
		{
			name:     "exactly at second bracket limit",
			gross:    3000,
			expected: 340,
		},
		{
			name:     "exactly at third bracket limit",
			gross:    5000,
			expected: 780,
		},
		{
			name:     "into the unbounded top bracket",
			gross:    6000,
			expected: 1020,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, calc.ProgressiveTax(tt.gross), 0.001)
		})
	}
}

func TestProgressiveTax_NeverTaxesWholeAmountAtTopRate(t *testing.T) {
	calc := newTestCalculator(t)

	// 6000 at a flat 24% would be 1440; marginal taxation must charge less.
	tax := calc.ProgressiveTax(6000)
	assert.Less(t, tax, 6000*0.24)
}

func TestProgressiveTax_Monotonic(t *testing.T) {
	calc := newTestCalculator(t)

	previous := 0.0
	for gross := 0.0; gross <= 10000; gross += 250 {
		tax := calc.ProgressiveTax(gross)
		assert.GreaterOrEqual(t, tax, previous, "tax decreased at gross %v", gross)
		previous = tax
	}
}

func TestValidateBrackets(t *testing.T) {
	tests := []struct {
		name     string
		brackets []Bracket
		wantErr  bool
	}{
		{
			name:     "default table is valid",
			brackets: DefaultBrackets(),
			wantErr:  false,
		},
		{
			name: "non-ascending limits rejected",
			brackets: []Bracket{
				{Limit: 3000, Rate: 0.10},
				{Limit: 1000, Rate: 0.12},
				{Limit: math.Inf(1), Rate: 0.24},
			},
			wantErr: true,
		},
		{
			name: "rate of 1 or more rejected",
			brackets: []Bracket{
				{Limit: 1000, Rate: 1.0},
				{Limit: math.Inf(1), Rate: 0.24},
			},
			wantErr: true,
		},
		{
			name: "bounded final bracket rejected",
			brackets: []Bracket{
				{Limit: 1000, Rate: 0.10},
				{Limit: 5000, Rate: 0.22},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBrackets(tt.brackets)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

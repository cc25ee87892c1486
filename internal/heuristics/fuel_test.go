package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

func TestFuel(t *testing.T) {
	tests := []struct {
		name     string
		in       FuelInputs
		wantFlag assessment.Flag
	}{
		{
			name: "claim reconciles with components",
			in: FuelInputs{
				HeavyFuelOil:          10.00,
				HSDOil:                4.50,
				LubeOil:               1.25,
				LubricantsConsumables: 2.25,
				TotalClaimedFuelCost:  18.00,
				PreviousYearFuelCost:  16.40,
			},
			wantFlag: assessment.FlagGreen,
		},
		{
			name: "small reconciliation gap",
			in: FuelInputs{
				HeavyFuelOil:         10.00,
				HSDOil:               4.50,
				TotalClaimedFuelCost: 15.00,
				PreviousYearFuelCost: 14.00,
			},
			wantFlag: assessment.FlagYellow,
		},
		{
			name: "claim far from components",
			in: FuelInputs{
				HeavyFuelOil:         10.00,
				TotalClaimedFuelCost: 18.00,
				PreviousYearFuelCost: 17.00,
			},
			wantFlag: assessment.FlagRed,
		},
		{
			name: "yoy doubling demotes green to yellow",
			in: FuelInputs{
				HeavyFuelOil:         18.00,
				TotalClaimedFuelCost: 18.00,
				PreviousYearFuelCost: 8.00,
			},
			wantFlag: assessment.FlagYellow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fuel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, got.Flag)
		})
	}
}

func TestFuelYoYNoteOnlySetWhenDemoted(t *testing.T) {
	got, err := Fuel(FuelInputs{
		HeavyFuelOil:         18.00,
		TotalClaimedFuelCost: 18.00,
		PreviousYearFuelCost: 8.00,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.Note)

	got, err = Fuel(FuelInputs{
		HeavyFuelOil:         18.00,
		TotalClaimedFuelCost: 18.00,
		PreviousYearFuelCost: 16.00,
	})
	require.NoError(t, err)
	assert.Empty(t, got.Note)
}

func TestFuelRejectsNegativeComponents(t *testing.T) {
	_, err := Fuel(FuelInputs{HeavyFuelOil: -1})
	assert.Error(t, err)
}

package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/gridreg/trueup-cli/internal/evaluate"
	"github.com/gridreg/trueup-cli/internal/fy"
	"github.com/gridreg/trueup-cli/internal/unit"
)

func evaluatedUnits(t *testing.T) (*unit.Generation, *unit.Transmission, *unit.Distribution) {
	t.Helper()
	g, tr, d, err := evaluate.All(fy.Defaults())
	require.NoError(t, err)
	return g, tr, d
}

func TestCrFormatting(t *testing.T) {
	assert.Equal(t, "₹1,234.50 Cr", Cr(1234.5))
	assert.Equal(t, "₹0.00 Cr", Cr(0))
}

func TestWriteSummary(t *testing.T) {
	g, tr, _ := evaluatedUnits(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, g, tr))
	out := buf.String()

	assert.Contains(t, out, "Generation (SBU-G)")
	assert.Contains(t, out, "Transmission (SBU-T)")
	assert.Contains(t, out, "Net revenue requirement")
	assert.Contains(t, out, "review incomplete")
	assert.Contains(t, out, "Loss analysis")
	// Non-tariff income is the deduction line.
	assert.Contains(t, out, "- Non-Tariff Income")
}

func TestWriteDrillDown(t *testing.T) {
	g, _, _ := evaluatedUnits(t)

	var buf bytes.Buffer
	require.NoError(t, WriteDrillDown(&buf, g, "om_expenses"))
	out := buf.String()

	assert.Contains(t, out, "OM-INFL-01")
	assert.Contains(t, out, "OM-NORM-01")
	assert.Contains(t, out, "Review: Pending")

	require.Error(t, WriteDrillDown(&buf, g, "no_such_item"))
}

func TestWorkbookSheets(t *testing.T) {
	g, tr, d := evaluatedUnits(t)

	f, err := Workbook(g, tr, d)
	require.NoError(t, err)

	for _, name := range []string{"Summary", "SBU-G", "SBU-T", "SBU-D", "Pending Reviews"} {
		_, ok := f.Sheet[name]
		assert.True(t, ok, "missing sheet %s", name)
	}

	summary := f.Sheet["Summary"]
	// Header plus 10+12+15 roster lines plus three net requirement rows.
	require.Len(t, summary.Rows, 41)
	assert.Equal(t, "SBU", summary.Rows[0].Cells[0].String())

	drill := f.Sheet["SBU-D"]
	require.Greater(t, len(drill.Rows), 15)
	last := drill.Rows[len(drill.Rows)-1]
	assert.Equal(t, "Loss Analysis", last.Cells[0].String())
}

func TestSaveRoundTrips(t *testing.T) {
	g, _, _ := evaluatedUnits(t)
	path := filepath.Join(t.TempDir(), "trueup.xlsx")

	require.NoError(t, Save(path, g))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	_, ok := f.Sheet["SBU-G"]
	assert.True(t, ok)
}

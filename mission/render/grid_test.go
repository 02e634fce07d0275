package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/rover-mission/mission/control"
	"github.com/wricardo/rover-mission/mission/input"
)

func runMission(t *testing.T, text string, opts ...control.Option) *control.Report {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	mission, err := input.ParseString(text)
	require.NoError(t, err)
	report, err := control.Run(mission, opts...)
	require.NoError(t, err)
	return report
}

func TestGrid_Classic(t *testing.T) {
	report := runMission(t, "5 5\n1 2 N\nLMLMLMLMM\n3 3 E\nMMRMMRMRRM\n")

	out := Grid(report)

	assert.Contains(t, out, "Plateau 5x5")
	assert.Contains(t, out, "  3 . ^ . . . .")
	assert.Contains(t, out, "  1 . . . . . >")
	assert.Contains(t, out, "    0 1 2 3 4 5")
	assert.Contains(t, out, "rover 1: 1 2 N -> 1 3 N (done)")
	assert.Contains(t, out, "rover 2: 3 3 E -> 5 1 E (done)")

	// North is drawn first
	assert.Less(t, strings.Index(out, "  5 "), strings.Index(out, "  0 "))
}

func TestGrid_HaltedRover(t *testing.T) {
	report := runMission(t, "2 2\n2 2 N\nM\n", control.WithPolicy(control.PolicyHaltRover))

	out := Grid(report)

	assert.Contains(t, out, "rover 1: 2 2 N -> 2 2 N (halted)")
	assert.Contains(t, out, "rover 1: instruction 1 (M) failed")
}

func TestGrid_TooLarge(t *testing.T) {
	report := runMission(t, "500 500\n0 0 N\nM\n")

	out := Grid(report)

	assert.Contains(t, out, "too large to draw")
	assert.Contains(t, out, "rover 1: 0 0 N -> 0 1 N (done)")
}

func TestGrid_HugeDimensions(t *testing.T) {
	report := runMission(t, "9223372036854775807 1\n0 0 N\nM\n")

	var out string
	require.NotPanics(t, func() { out = Grid(report) })
	assert.Contains(t, out, "too large to draw")
	assert.Contains(t, out, "rover 1: 0 0 N -> 0 1 N (done)")
}

func TestDrawable(t *testing.T) {
	tests := []struct {
		width, height int
		want          bool
	}{
		{5, 5, true},
		{79, 79, true},
		{80, 79, false},
		{0, MaxCells - 1, true},
		{0, MaxCells, false},
		{MaxCells, 0, false},
		{int(^uint(0) >> 1), 1, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, drawable(test.width, test.height), "drawable(%d, %d)", test.width, test.height)
	}
}

// Package render draws a finished mission report as a terminal grid.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wricardo/rover-mission/mission/control"
	"github.com/wricardo/rover-mission/mission/engine"
)

// MaxCells caps the grid size that Grid will draw
const MaxCells = 80 * 80

var (
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	roverStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	haltedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var arrows = map[engine.Heading]string{
	engine.North: "^",
	engine.East:  ">",
	engine.South: "v",
	engine.West:  "<",
}

// Grid renders the plateau with north at the top. Each rover cell shows its
// heading arrow; rovers that did not complete their instructions are
// highlighted. Plateaus larger than MaxCells are summarised instead.
func Grid(report *control.Report) string {
	title := titleStyle.Render(fmt.Sprintf("Plateau %dx%d", report.Plateau.Width, report.Plateau.Height))

	if !drawable(report.Plateau.Width, report.Plateau.Height) {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			"(too large to draw)",
			legend(report),
		)
	}

	width, height := report.Plateau.Width+1, report.Plateau.Height+1
	cells := make(map[engine.Position]control.RoverResult, len(report.Rovers))
	for _, rover := range report.Rovers {
		cells[rover.Final.Position()] = rover
	}

	var rows []string
	for y := height - 1; y >= 0; y-- {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%3d ", y))
		for x := 0; x < width; x++ {
			if x > 0 {
				row.WriteString(" ")
			}
			rover, ok := cells[engine.Position{X: x, Y: y}]
			switch {
			case !ok:
				row.WriteString(emptyStyle.Render("."))
			case rover.Completed:
				row.WriteString(roverStyle.Render(arrows[rover.Final.Heading]))
			default:
				row.WriteString(haltedStyle.Render(arrows[rover.Final.Heading]))
			}
		}
		rows = append(rows, row.String())
	}
	rows = append(rows, "    "+axis(width))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		frameStyle.Render(strings.Join(rows, "\n")),
		legend(report),
	)
}

// drawable checks each dimension before multiplying so huge plateaus
// cannot overflow the cell count.
func drawable(width, height int) bool {
	if width < 0 || height < 0 || width >= MaxCells || height >= MaxCells {
		return false
	}
	return (width+1)*(height+1) <= MaxCells
}

func axis(width int) string {
	labels := make([]string, width)
	for x := range labels {
		labels[x] = fmt.Sprintf("%d", x%10)
	}
	return strings.Join(labels, " ")
}

func legend(report *control.Report) string {
	lines := make([]string, 0, len(report.Rovers)+len(report.Failures))
	for _, rover := range report.Rovers {
		status := "done"
		if !rover.Completed {
			status = "halted"
		}
		lines = append(lines, fmt.Sprintf("rover %d: %s -> %s (%s)", rover.Rover, rover.Start, rover.Final, status))
	}
	for _, line := range report.FailureLines() {
		lines = append(lines, haltedStyle.Render(line))
	}
	return strings.Join(lines, "\n")
}

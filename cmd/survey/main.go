// Command survey prints quick, human-readable heuristics about the missions in
// a catalog directory. It summarizes plateau sizes, rover counts and
// instruction totals, then dry-runs each mission with the halt policy to
// highlight rovers that would collide or drive off the plateau.
package main

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/wricardo/rover-mission/mission/catalog"
	"github.com/wricardo/rover-mission/mission/control"
	"github.com/wricardo/rover-mission/mission/engine"
	"github.com/wricardo/rover-mission/mission/service"
)

// maxListed caps how many halted rovers are printed per mission
const maxListed = 5

func main() {
	dir := "data/missions"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := survey(os.Stdout, dir); err != nil {
		fmt.Fprintf(os.Stderr, "survey: %v\n", err)
		os.Exit(1)
	}
}

func survey(w io.Writer, dir string) error {
	manager, err := catalog.NewManager(dir)
	if err != nil {
		return err
	}

	missions, err := manager.ListMissions()
	if err != nil {
		return err
	}
	if len(missions) == 0 {
		fmt.Fprintf(w, "No missions found in %s\n", dir)
		return nil
	}

	for _, info := range missions {
		fmt.Fprintf(w, "\n=== Surveying %s ===\n", info.Filename)
		entry, err := manager.LoadMission(info.MissionID)
		if err != nil {
			fmt.Fprintf(w, "Error loading mission: %v\n", err)
			continue
		}
		surveyMission(w, entry)
	}
	return nil
}

// cellCount is (width+1)*(height+1). Dimensions may be as large as math.MaxInt.
func cellCount(width, height int) *big.Int {
	one := big.NewInt(1)
	w := new(big.Int).Add(big.NewInt(int64(width)), one)
	h := new(big.Int).Add(big.NewInt(int64(height)), one)
	return w.Mul(w, h)
}

func surveyMission(w io.Writer, entry *service.CatalogEntry) {
	mission := entry.Mission

	fmt.Fprintf(w, "Name: %s\n", entry.Info.Name)
	fmt.Fprintf(w, "Plateau: %d x %d\n", mission.Plateau.Width, mission.Plateau.Height)
	fmt.Fprintf(w, "Rovers: %d\n", len(mission.Rovers))
	fmt.Fprintf(w, "Instructions: %d\n", mission.InstructionCount())

	// Track every cell a rover stands on during the dry run
	visited := make(map[engine.Position]bool)
	observer := func(event control.StepEvent) {
		if event.Error == "" {
			visited[event.State.Position()] = true
		}
	}

	report, err := control.Run(mission, control.WithPolicy(control.PolicyHaltRover), control.WithObserver(observer))
	if err != nil {
		fmt.Fprintf(w, "Error running mission: %v\n", err)
		return
	}

	fmt.Fprintf(w, "Cells visited: %d of %s\n", len(visited), cellCount(mission.Plateau.Width, mission.Plateau.Height))

	if len(report.Failures) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d rovers would halt!\n", len(report.Failures))
		for i, failure := range report.Failures {
			if i < maxListed {
				fmt.Fprintf(w, "   %s\n", failure.Error())
			}
		}
		if len(report.Failures) > maxListed {
			fmt.Fprintf(w, "   ... and %d more\n", len(report.Failures)-maxListed)
		}
	} else {
		fmt.Fprintf(w, "✅ All rovers complete their instructions\n")
	}

	fmt.Fprintf(w, "%s\n", report.Summary())
}

package service

import (
	"context"
	"errors"

	"github.com/wricardo/rover-mission/mission/control"
	"github.com/wricardo/rover-mission/mission/input"
)

// ErrNoCatalog is returned by catalog operations when no catalog is configured
var ErrNoCatalog = errors.New("no mission catalog configured")

// MissionService defines all mission-related operations
type MissionService interface {
	// Ad-hoc missions
	Simulate(ctx context.Context, source string, opts RunOptions) (*SimulationResult, error)
	Validate(ctx context.Context, source string) (*ValidationResult, error)

	// Catalog
	ListMissions(ctx context.Context) ([]*MissionInfo, error)
	GetMission(ctx context.Context, name string) (*MissionDetail, error)
	RunMission(ctx context.Context, name string, opts RunOptions) (*SimulationResult, error)
}

// MissionCatalog handles loading of named missions
type MissionCatalog interface {
	LoadMission(name string) (*CatalogEntry, error)
	ListMissions() ([]*MissionInfo, error)
}

// CatalogEntry is a loaded mission together with its source
type CatalogEntry struct {
	Info    *MissionInfo
	Source  string
	Mission *input.Mission
}

// RunOptions tunes a single simulation run
type RunOptions struct {
	Policy   control.Policy
	Observer control.Observer
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wricardo/rover-mission/mission/control"
	"github.com/wricardo/rover-mission/mission/input"
)

// missionServiceImpl implements the MissionService interface
type missionServiceImpl struct {
	catalog MissionCatalog
	logger  zerolog.Logger
}

// NewMissionService creates a new mission service. catalog may be nil, in
// which case only ad-hoc missions are available.
func NewMissionService(catalog MissionCatalog, logger zerolog.Logger) MissionService {
	return &missionServiceImpl{
		catalog: catalog,
		logger:  logger,
	}
}

// Simulate parses source (text or YAML) and runs it
func (s *missionServiceImpl) Simulate(ctx context.Context, source string, opts RunOptions) (*SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mission, format, err := input.ParseSource(source)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("format", format).Int("rovers", len(mission.Rovers)).Msg("simulating mission")
	return s.run(mission, opts)
}

// Validate parses source without running it
func (s *missionServiceImpl) Validate(ctx context.Context, source string) (*ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mission, format, err := input.ParseSource(source)
	if err != nil {
		var parseErr *input.ParseError
		if !errors.As(err, &parseErr) {
			return nil, err
		}
		return &ValidationResult{
			Valid:  false,
			Format: format,
			Error:  parseErr.Error(),
			Line:   parseErr.Line,
		}, nil
	}

	result := &ValidationResult{
		Valid:            true,
		Format:           format,
		Plateau:          mission.Plateau,
		RoverCount:       len(mission.Rovers),
		InstructionCount: mission.InstructionCount(),
	}
	if mission.Plateau.Width < 0 || mission.Plateau.Height < 0 {
		result.Valid = false
		result.Error = fmt.Sprintf("plateau dimensions must be non-negative, got %dx%d",
			mission.Plateau.Width, mission.Plateau.Height)
		result.Line = 1
	}
	return result, nil
}

// ListMissions returns every loadable mission in the catalog
func (s *missionServiceImpl) ListMissions(ctx context.Context) ([]*MissionInfo, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	return s.catalog.ListMissions()
}

// GetMission returns a mission's metadata, canonical text and rover plans
func (s *missionServiceImpl) GetMission(ctx context.Context, name string) (*MissionDetail, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}

	entry, err := s.catalog.LoadMission(name)
	if err != nil {
		return nil, err
	}

	return &MissionDetail{
		Info:   entry.Info,
		Lines:  entry.Mission.Lines(),
		Rovers: planRovers(entry.Mission),
	}, nil
}

// RunMission runs a named mission from the catalog
func (s *missionServiceImpl) RunMission(ctx context.Context, name string, opts RunOptions) (*SimulationResult, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, err := s.catalog.LoadMission(name)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("mission", entry.Info.MissionID).Msg("running catalog mission")
	result, err := s.run(entry.Mission, opts)
	if err != nil {
		return nil, fmt.Errorf("mission %s: %w", entry.Info.MissionID, err)
	}
	result.MissionID = entry.Info.MissionID
	return result, nil
}

func (s *missionServiceImpl) run(mission *input.Mission, opts RunOptions) (*SimulationResult, error) {
	policy := opts.Policy
	if policy == "" {
		policy = control.PolicyAbort
	}

	runOpts := []control.Option{
		control.WithPolicy(policy),
		control.WithLogger(s.logger),
	}
	if opts.Observer != nil {
		runOpts = append(runOpts, control.WithObserver(opts.Observer))
	}

	report, err := control.Run(mission, runOpts...)
	if err != nil {
		s.logger.Debug().Err(err).Msg("mission failed")
		return nil, err
	}
	return newSimulationResult(report, policy), nil
}

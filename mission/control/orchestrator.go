package control

import (
	"github.com/rs/zerolog"

	"github.com/wricardo/rover-mission/mission/engine"
	"github.com/wricardo/rover-mission/mission/input"
)

// StepEvent describes one placement (Step 0) or one executed instruction
type StepEvent struct {
	Rover       int               `json:"rover"`
	Step        int               `json:"step"`
	Instruction string            `json:"instruction,omitempty"`
	State       engine.RoverState `json:"state"`
	Error       string            `json:"error,omitempty"`
}

// Observer receives step events synchronously while a mission runs
type Observer func(StepEvent)

type options struct {
	policy   Policy
	observer Observer
	logger   zerolog.Logger
}

// Option configures Run
type Option func(*options)

// WithPolicy sets the failure policy. The default is PolicyAbort.
func WithPolicy(policy Policy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithObserver registers a callback for every placement and instruction
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Run executes the mission and collects the final state of every rover
func Run(mission *input.Mission, opts ...Option) (*Report, error) {
	o := options{
		policy: PolicyAbort,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	plateau, err := engine.NewPlateau(mission.Plateau.Width, mission.Plateau.Height)
	if err != nil {
		return nil, err
	}

	o.logger.Debug().
		Int("width", plateau.Width()).
		Int("height", plateau.Height()).
		Int("rovers", len(mission.Rovers)).
		Msg("plateau ready")

	report := &Report{
		Plateau: mission.Plateau,
		Rovers:  make([]RoverResult, 0, len(mission.Rovers)),
	}

	for i, descriptor := range mission.Rovers {
		result, err := runRover(plateau, i+1, descriptor, &o)
		if err != nil {
			if o.policy != PolicyHaltRover {
				o.logger.Debug().Err(err).Msg("mission aborted")
				return nil, err
			}
			o.logger.Debug().Err(err).Msg("rover halted")
			report.Failures = append(report.Failures, *err)
		}
		if result != nil {
			report.Rovers = append(report.Rovers, *result)
		}
	}

	report.Occupied = plateau.OccupiedPositions()
	return report, nil
}

// runRover places one rover and drives it through its instructions. When the
// rover was placed, the returned result holds its last valid state even if
// an instruction failed.
func runRover(plateau *engine.Plateau, index int, descriptor input.RoverDescriptor, o *options) (*RoverResult, *RoverError) {
	rover, err := engine.NewRover(descriptor.X, descriptor.Y, descriptor.Heading, plateau)
	if err != nil {
		o.notify(StepEvent{Rover: index, State: descriptor.Start(), Error: err.Error()})
		return nil, &RoverError{Rover: index, Err: err}
	}

	o.logger.Debug().Int("rover", index).Stringer("state", rover.State()).Msg("rover placed")
	o.notify(StepEvent{Rover: index, State: rover.State()})

	result := &RoverResult{Rover: index, Start: descriptor.Start()}
	for step, instruction := range descriptor.Instructions {
		event := StepEvent{Rover: index, Step: step + 1, Instruction: instruction.String()}

		if err := rover.Execute(instruction); err != nil {
			event.State = rover.State()
			event.Error = err.Error()
			o.notify(event)

			result.Final = rover.State()
			result.Executed = step
			return result, &RoverError{Rover: index, Step: step + 1, Instruction: instruction, Err: err}
		}

		event.State = rover.State()
		o.notify(event)
	}

	result.Final = rover.State()
	result.Executed = len(descriptor.Instructions)
	result.Completed = true
	return result, nil
}

func (o *options) notify(event StepEvent) {
	if o.observer != nil {
		o.observer(event)
	}
}

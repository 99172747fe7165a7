package app

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"diesel.com/lattice/fluid"
	"diesel.com/lattice/geometry"
	"github.com/sirupsen/logrus"
)

//State of the simulation loop
type State int

const (
	Initialized State = iota
	Running
	Complete
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Complete:
		return "complete"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

//Option customises a Simulation
type Option func(*Simulation)

//WithRand injects the perturbation source. Default: seeded from Config.Seed.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulation) { s.rng = r }
}

//WithLogger sets the logger. Default discards.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Simulation) { s.log = l }
}

//WithWorkers overrides Config.Workers
func WithWorkers(n int) Option {
	return func(s *Simulation) { s.workers = &n }
}

//Simulation owns the distribution field and advances it one timestep at a
//time: wall, stream, obstacle, collide.
type Simulation struct {
	cfg     Config
	lattice geometry.Lattice
	mask    *geometry.Mask
	field   *fluid.Field
	macro   *fluid.Macro

	rng     *rand.Rand
	log     logrus.FieldLogger
	workers *int

	state   State
	next    int   //index of the next timestep
	warned  bool  //instability already reported
	haltErr error //sticky failure when halting on instability
}

//NewSimulation validates cfg and builds the mask and initial field
func NewSimulation(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{cfg: cfg, state: Initialized}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = DiscardLogger()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(cfg.Seed))
	}

	lat, err := geometry.NewLattice(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	mask, err := lat.Obstacle(cfg.ObstacleSpec())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	field, err := fluid.InitialField(cfg.Width, cfg.Height, s.rng, cfg.Perturbations)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	field.Workers = cfg.Workers
	if s.workers != nil {
		field.Workers = *s.workers
	}
	s.lattice, s.mask, s.field = lat, mask, field
	s.macro = fluid.NewMacro(cfg.Width, cfg.Height)
	field.Macroscopic(s.macro)

	s.log.WithFields(logrus.Fields{
		"size":    lat.String(),
		"shape":   cfg.ObstacleSpec().Shape,
		"solid":   mask.Count(),
		"mode":    cfg.Mode,
		"steps":   cfg.Timesteps,
		"tau":     cfg.Timescale,
		"wall":    cfg.WallBoundary,
		"perturb": cfg.Perturbations,
	}).Debug("simulation initialized")
	if mask.Count() == lat.Cells() {
		s.log.WithField("size", lat.String()).Warn("obstacle covers the whole lattice")
	}
	return s, nil
}

func (s *Simulation) Config() Config {
	return s.cfg
}

func (s *Simulation) State() State {
	return s.state
}

func (s *Simulation) Mask() *geometry.Mask {
	return s.mask
}

//NextStep is the index the next call to Step will execute
func (s *Simulation) NextStep() int {
	return s.next
}

//Field returns a copy of the current distribution
func (s *Simulation) Field() *fluid.Field {
	return s.field.Clone()
}

//Macro returns a copy of the macroscopic fields of the last step
func (s *Simulation) Macro() *fluid.Macro {
	return s.macro.Clone()
}

//Step executes one timestep. It returns a frame when the step index is a
//multiple of the stride, nil otherwise.
func (s *Simulation) Step() (*Frame, error) {
	if s.haltErr != nil {
		return nil, s.haltErr
	}
	if s.state == Complete {
		return nil, ErrComplete
	}
	s.state = Running
	dt := s.next

	if s.cfg.WallBoundary {
		fluid.ApplyWall(s.field)
	}
	fluid.Stream(s.field)
	fluid.ApplyObstacle(s.field, s.mask, s.macro)
	fluid.Collide(s.field, s.macro, s.cfg.Timescale)

	if err := s.checkStable(dt); err != nil {
		return nil, err
	}

	s.next++
	if s.next > s.cfg.Timesteps {
		s.state = Complete
	}
	if dt%s.cfg.Stride != 0 {
		return nil, nil
	}
	return s.frame(dt), nil
}

func (s *Simulation) checkStable(dt int) error {
	err := fluid.CheckStable(s.macro)
	if err == nil {
		return nil
	}
	if s.cfg.HaltOnInstability {
		s.haltErr = &StepError{Step: dt, Err: err}
		s.log.WithField("step", dt).WithError(err).Error("numerical instability, halting")
		return s.haltErr
	}
	if !s.warned {
		s.warned = true
		s.log.WithField("step", dt).WithError(err).Warn("numerical instability, output will contain non-finite values")
	}
	return nil
}

func (s *Simulation) frame(dt int) *Frame {
	fr := &Frame{
		Step:  dt,
		Mode:  s.cfg.Mode,
		Macro: s.macro.Clone(),
		Mass:  s.field.TotalMass(),
	}
	if s.cfg.Mode == ModeVortices {
		fr.Scalar = fluid.Curl(s.macro)
	} else {
		fr.Scalar = fluid.Speed(s.macro)
	}
	return fr
}

//Run executes the remaining timesteps, handing each emitted frame to every
//observer in order. Finishers run once the loop stops, also after an error.
func (s *Simulation) Run(observers ...Observer) error {
	runErr := s.loop(observers)
	errs := []error{runErr}
	for _, o := range observers {
		if f, ok := o.(Finisher); ok {
			if err := f.Finish(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Simulation) loop(observers []Observer) error {
	for s.state != Complete {
		fr, err := s.Step()
		if err != nil {
			return err
		}
		if fr == nil {
			continue
		}
		for _, o := range observers {
			if err := o.Observe(fr); err != nil {
				return &StepError{Step: fr.Step, Err: err}
			}
		}
	}
	return nil
}

//Summary describes the run for logs
func (s *Simulation) Summary() string {
	d := s.cfg.Summary()
	return fmt.Sprintf("size %s, timesteps %s, timescale %s, wall boundary %s, mode %s",
		d[0], d[1], d[2], d[3], s.cfg.Mode)
}

//OutputName is the base file name for this run's outputs
func (s *Simulation) OutputName() string {
	return strings.TrimSpace(s.cfg.OutputName())
}

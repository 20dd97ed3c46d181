package engine

import (
	"fmt"
	"math"

	"github.com/vkarel/advlab/internal/field"
	"github.com/vkarel/advlab/internal/scheme"
)

// Phase is the lifecycle state of an Integrator.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseReady
	PhaseStepping
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseStepping:
		return "stepping"
	case PhaseStopped:
		return "stopped"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Metric observes the solution after each completed step and reduces it to
// one number.
type Metric interface {
	Name() string
	Observe(f field.Field, t float64)
	Value() float64
	Reset()
}

// Observer is a passive per-step hook. Every Metric is also an Observer,
// so one implementation can serve both roles.
type Observer interface {
	Observe(f field.Field, t float64)
}

// Config holds the stepping parameters of an integrator.
type Config struct {
	// CFL is the Courant number used by StepAuto and the sub-step bound.
	CFL float64
	// MaxStep clamps the automatic dt, and guards it when the velocity
	// field is degenerate.
	MaxStep float64
	// SelfAdvect transports each velocity component through the flow
	// after the scalar update, making the velocity field nonlinear.
	SelfAdvect bool
	// SnapshotEvery captures a frame into the Run result every n steps;
	// zero keeps only the final state.
	SnapshotEvery int
}

func DefaultConfig() Config {
	return Config{
		CFL:     0.8,
		MaxStep: 1.0,
	}
}

// Integrator owns one simulation: grid, scheme, boundary set, velocity and
// clock. Not safe for concurrent use; run one goroutine per integrator.
type Integrator struct {
	phase Phase
	cfg   Config
	clock Clock

	grid *field.Grid
	sch  scheme.Scheme
	bc   field.Boundaries

	vel       *field.VectorField // active, possibly rescaled
	velBase   *field.VectorField // as configured, scale 1
	flowScale float64
	velWork   *field.VectorField // self-advection staging

	metrics   []Metric
	observers []Observer
}

// New returns an Idle integrator with the given stepping parameters.
func New(cfg Config) *Integrator {
	if cfg.CFL <= 0 {
		cfg.CFL = DefaultConfig().CFL
	}
	if cfg.MaxStep <= 0 {
		cfg.MaxStep = DefaultConfig().MaxStep
	}
	return &Integrator{phase: PhaseIdle, cfg: cfg, flowScale: 1}
}

func (in *Integrator) Phase() Phase   { return in.phase }
func (in *Integrator) Clock() Clock   { return in.clock }
func (in *Integrator) Config() Config { return in.cfg }

func (in *Integrator) AddMetric(m Metric)     { in.metrics = append(in.metrics, m) }
func (in *Integrator) AddObserver(o Observer) { in.observers = append(in.observers, o) }

// Configure binds the integrator to a grid, scheme, boundary set and
// velocity field and resets the clock. Allowed from Idle and Ready.
func (in *Integrator) Configure(g *field.Grid, s scheme.Scheme, bc field.Boundaries, vel *field.VectorField) error {
	if in.phase == PhaseStopped {
		return ErrStopped
	}
	if g == nil || s == nil {
		return fmt.Errorf("engine: nil grid or scheme: %w", ErrNotReady)
	}
	if err := bc.Validate(g.Rank()); err != nil {
		return err
	}
	if vel == nil || !vel.Matches(g) {
		return fmt.Errorf("engine: velocity does not match the grid: %w", field.ErrShapeMismatch)
	}

	in.grid = g
	in.sch = s
	in.bc = bc
	in.vel = vel
	in.velBase = vel.Clone()
	in.flowScale = 1
	in.velWork = nil
	in.clock.reset()
	in.phase = PhaseReady
	return nil
}

// SetScheme swaps the discretization between steps. The grid, boundaries
// and velocity stay untouched.
func (in *Integrator) SetScheme(s scheme.Scheme) error {
	if err := in.ready(); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("engine: nil scheme: %w", ErrNotReady)
	}
	in.sch = s
	return nil
}

func (in *Integrator) Scheme() scheme.Scheme { return in.sch }

// SetBoundaries swaps the boundary closure between steps.
func (in *Integrator) SetBoundaries(bc field.Boundaries) error {
	if err := in.ready(); err != nil {
		return err
	}
	if err := bc.Validate(in.grid.Rank()); err != nil {
		return err
	}
	in.bc = bc
	return nil
}

func (in *Integrator) Boundaries() field.Boundaries { return in.bc }

// SetCFL adjusts the Courant number used for automatic stepping.
func (in *Integrator) SetCFL(cfl float64) error {
	if !(cfl > 0) || math.IsInf(cfl, 0) {
		return fmt.Errorf("engine: CFL number %v: %w", cfl, field.ErrInvalidTimeStep)
	}
	in.cfg.CFL = cfl
	return nil
}

// SetVelocity replaces the velocity field between steps and resets the
// flow scale baseline.
func (in *Integrator) SetVelocity(vel *field.VectorField) error {
	if err := in.ready(); err != nil {
		return err
	}
	if vel == nil || !vel.Matches(in.grid) {
		return fmt.Errorf("engine: velocity does not match the grid: %w", field.ErrShapeMismatch)
	}
	in.vel = vel
	in.velBase = vel.Clone()
	in.flowScale = 1
	return nil
}

// SetFlowScale rescales the active velocity to factor times the configured
// base field. With self-advection the evolved field is rescaled in place
// instead, since the base no longer describes it.
func (in *Integrator) SetFlowScale(factor float64) error {
	if err := in.ready(); err != nil {
		return err
	}
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("engine: flow scale %v: %w", factor, field.ErrInvalidTimeStep)
	}
	if factor == in.flowScale {
		return nil
	}
	if in.cfg.SelfAdvect && in.flowScale != 0 {
		in.vel.Scale(factor / in.flowScale)
	} else {
		if err := in.vel.CopyFrom(in.velBase); err != nil {
			return err
		}
		in.vel.Scale(factor)
	}
	in.flowScale = factor
	return nil
}

func (in *Integrator) FlowScale() float64 { return in.flowScale }

// StableDt reports the automatic step: the Courant number divided by the
// steepest cell rate, clamped to MaxStep. A zero velocity field yields
// MaxStep, the guarded fallback.
func (in *Integrator) StableDt() float64 {
	if in.phase == PhaseIdle || in.phase == PhaseStopped {
		return 0
	}
	rate := in.vel.MaxRate()
	if rate == 0 {
		return in.cfg.MaxStep
	}
	dt := in.cfg.CFL / rate
	if dt > in.cfg.MaxStep {
		dt = in.cfg.MaxStep
	}
	return dt
}

// Step advances the simulation by dt. Requests beyond the stability bound
// of a Courant-limited scheme are split into equal sub-steps; the caller
// observes one completed step either way. On error the current buffer is
// left exactly as it was.
func (in *Integrator) Step(dt float64) error {
	if err := in.ready(); err != nil {
		return err
	}
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return in.fail(fmt.Errorf("engine: dt %v: %w", dt, field.ErrInvalidTimeStep))
	}

	in.phase = PhaseStepping
	defer func() {
		if in.phase == PhaseStepping {
			in.phase = PhaseReady
		}
	}()

	sub, parts := dt, 1
	if in.sch.CFLBound() {
		if rate := in.vel.MaxRate(); rate > 0 {
			stable := in.cfg.CFL / rate
			if dt > stable {
				parts = int(math.Ceil(dt/stable - 1e-12))
				if parts < 1 {
					parts = 1
				}
				sub = dt / float64(parts)
			}
		}
	}

	for i := 0; i < parts; i++ {
		if err := in.subStep(sub); err != nil {
			return err
		}
	}
	in.clock.complete()
	in.notify()
	return nil
}

// StepAuto advances by StableDt. It refuses an identically zero velocity
// field: there is no transport to resolve and no rate to derive dt from.
func (in *Integrator) StepAuto() error {
	if err := in.ready(); err != nil {
		return err
	}
	if in.vel.MaxRate() == 0 {
		return in.fail(field.ErrDegenerateVelocity)
	}
	return in.Step(in.StableDt())
}

// AdvanceBy runs n automatic steps.
func (in *Integrator) AdvanceBy(n int) error {
	if n < 1 {
		return fmt.Errorf("engine: advance by %d steps", n)
	}
	for i := 0; i < n; i++ {
		if err := in.StepAuto(); err != nil {
			return err
		}
	}
	return nil
}

// Stop tears the integrator down. Terminal: every later operation fails
// with ErrStopped.
func (in *Integrator) Stop() {
	in.phase = PhaseStopped
}

func (in *Integrator) subStep(dt float64) error {
	if err := in.sch.Advect(in.grid.Next(), in.grid.Current(), in.vel, in.bc, dt); err != nil {
		return in.fail(err)
	}
	if in.cfg.SelfAdvect {
		if err := in.advectVelocity(dt); err != nil {
			return in.fail(err)
		}
	}
	in.grid.Swap()
	in.clock.advance(dt)
	return nil
}

// advectVelocity transports each velocity component as a scalar through
// the pre-step flow, then installs the staged result.
func (in *Integrator) advectVelocity(dt float64) error {
	if in.velWork == nil || !in.velWork.Matches(in.grid) {
		in.velWork = field.NewVectorField(in.grid)
	}
	for ax := 0; ax < in.vel.Rank(); ax++ {
		if err := in.sch.Advect(in.velWork.Comp(ax), in.vel.Comp(ax), in.vel, in.bc, dt); err != nil {
			return err
		}
	}
	return in.vel.CopyFrom(in.velWork)
}

func (in *Integrator) notify() {
	cur := in.grid.Current()
	t := in.clock.Time()
	for _, m := range in.metrics {
		m.Observe(cur, t)
	}
	for _, o := range in.observers {
		o.Observe(cur, t)
	}
}

func (in *Integrator) ready() error {
	switch in.phase {
	case PhaseReady:
		return nil
	case PhaseStopped:
		return ErrStopped
	default:
		return ErrNotReady
	}
}

func (in *Integrator) fail(err error) error {
	return &StepError{Step: in.clock.Steps() + 1, Time: in.clock.Time(), Wrapped: err}
}

// Snapshot is a read-only view of the solution between steps. Data and
// Velocity alias live buffers: they are valid until the next step call.
type Snapshot struct {
	Dims     []int
	Spacing  []float64
	Origin   []float64
	Time     float64
	Steps    int
	SubSteps int
	Scheme   string
	Data     field.Field
	Velocity *field.VectorField
}

// Snapshot captures the current solution view. Fails before Configure.
func (in *Integrator) Snapshot() (Snapshot, error) {
	switch in.phase {
	case PhaseIdle:
		return Snapshot{}, ErrNotReady
	case PhaseStopped:
		return Snapshot{}, ErrStopped
	}
	return Snapshot{
		Dims:     in.grid.Dims(),
		Spacing:  in.grid.Spacings(),
		Origin:   in.grid.Origins(),
		Time:     in.clock.Time(),
		Steps:    in.clock.Steps(),
		SubSteps: in.clock.SubSteps(),
		Scheme:   in.sch.Name(),
		Data:     in.grid.Current(),
		Velocity: in.vel,
	}, nil
}

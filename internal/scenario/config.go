package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCFL      = 0.8
	DefaultMaxStep  = 1.0
	DefaultDuration = 10.0
)

// Scenario is the complete description of one simulation: domain, closure,
// initial data, flow, scheme and stepping. Zero fields fall back to the
// defaults, so yaml files only state what they change.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Grid       GridConfig       `yaml:"grid"`
	Boundaries []BoundaryConfig `yaml:"boundaries"`
	Initial    InitialConfig    `yaml:"initial"`
	Flow       FlowConfig       `yaml:"flow"`

	Scheme   string `yaml:"scheme"`
	Limiter  bool   `yaml:"limiter"`
	Midpoint bool   `yaml:"midpoint"`

	CFL           float64 `yaml:"cfl"`
	MaxStep       float64 `yaml:"max_step"`
	Dt            float64 `yaml:"dt"` // explicit step; 0 steps automatically
	Duration      float64 `yaml:"duration"`
	SelfAdvect    bool    `yaml:"self_advect"`
	SnapshotEvery int     `yaml:"snapshot_every"`
	Seed          int64   `yaml:"seed"`
}

type GridConfig struct {
	Dims    []int     `yaml:"dims"`
	Spacing []float64 `yaml:"spacing"`
	Origin  []float64 `yaml:"origin"`
}

type BoundaryConfig struct {
	Kind  string  `yaml:"kind"`
	Value float64 `yaml:"value"`
}

type InitialConfig struct {
	Kind      string    `yaml:"kind"`
	Amplitude float64   `yaml:"amplitude"`
	Center    []float64 `yaml:"center"`
	Width     float64   `yaml:"width"`
	From      []float64 `yaml:"from"`
	To        []float64 `yaml:"to"`
}

type FlowConfig struct {
	Kind     string         `yaml:"kind"`
	Velocity []float64      `yaml:"velocity"`
	Omega    float64        `yaml:"omega"`
	Center   []float64      `yaml:"center"`
	Rate     float64        `yaml:"rate"`
	Modulate ModulateConfig `yaml:"modulate"`
}

type ModulateConfig struct {
	Kind   string  `yaml:"kind"`
	Period float64 `yaml:"period"`
	Floor  float64 `yaml:"floor"`
}

// Default returns the baseline scenario: a 1D periodic gaussian hill in a
// uniform flow, stepped automatically with the upwind scheme.
func Default() *Scenario {
	return &Scenario{
		Name: "default",
		Grid: GridConfig{Dims: []int{128}, Spacing: []float64{1.0}},
		Boundaries: []BoundaryConfig{
			{Kind: "periodic"},
		},
		Initial:  InitialConfig{Kind: "gaussian", Amplitude: 1, Center: []float64{32}, Width: 6},
		Flow:     FlowConfig{Kind: "uniform", Velocity: []float64{1}},
		Scheme:   "upwind",
		CFL:      DefaultCFL,
		MaxStep:  DefaultMaxStep,
		Duration: DefaultDuration,
	}
}

// Load reads a scenario file over the defaults: absent keys keep their
// default values.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	s.fillDefaults()
	return s, nil
}

// Save writes the scenario as yaml.
func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Scenario) fillDefaults() {
	if s.CFL <= 0 {
		s.CFL = DefaultCFL
	}
	if s.MaxStep <= 0 {
		s.MaxStep = DefaultMaxStep
	}
	if s.Duration <= 0 {
		s.Duration = DefaultDuration
	}
	if s.Scheme == "" {
		s.Scheme = "upwind"
	}
	if s.Initial.Kind == "" {
		s.Initial.Kind = "zero"
	}
	if s.Flow.Kind == "" {
		s.Flow.Kind = "uniform"
	}
}

// Clone returns a deep copy, safe to mutate independently.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Grid.Dims = append([]int(nil), s.Grid.Dims...)
	c.Grid.Spacing = append([]float64(nil), s.Grid.Spacing...)
	c.Grid.Origin = append([]float64(nil), s.Grid.Origin...)
	c.Boundaries = append([]BoundaryConfig(nil), s.Boundaries...)
	c.Initial.Center = append([]float64(nil), s.Initial.Center...)
	c.Initial.From = append([]float64(nil), s.Initial.From...)
	c.Initial.To = append([]float64(nil), s.Initial.To...)
	c.Flow.Velocity = append([]float64(nil), s.Flow.Velocity...)
	c.Flow.Center = append([]float64(nil), s.Flow.Center...)
	return &c
}

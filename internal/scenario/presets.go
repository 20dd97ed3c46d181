package scenario

import (
	"fmt"
	"sort"
)

// Presets is the built-in scenario catalog. Get returns a copy, so the
// catalog itself is never mutated by flag overrides.
var Presets = map[string]*Scenario{
	"square-pulse": {
		Name:        "square-pulse",
		Description: "square pulse in a slow uniform flow with fixed-value walls",
		Grid:        GridConfig{Dims: []int{200}, Spacing: []float64{0.05}},
		Boundaries:  []BoundaryConfig{{Kind: "fixed", Value: 0}},
		Initial:     InitialConfig{Kind: "square-pulse", Amplitude: 10, From: []float64{0.5}, To: []float64{1.0}},
		Flow:        FlowConfig{Kind: "uniform", Velocity: []float64{0.5}},
		Scheme:      "lax-wendroff",
		Dt:          0.01666,
		CFL:         DefaultCFL,
		MaxStep:     DefaultMaxStep,
		Duration:    10,
	},
	"gaussian-hill": {
		Name:        "gaussian-hill",
		Description: "smooth hill circling a periodic 1D domain",
		Grid:        GridConfig{Dims: []int{128}, Spacing: []float64{1}},
		Boundaries:  []BoundaryConfig{{Kind: "periodic"}},
		Initial:     InitialConfig{Kind: "gaussian", Amplitude: 1, Center: []float64{32}, Width: 6},
		Flow:        FlowConfig{Kind: "uniform", Velocity: []float64{1}},
		Scheme:      "upwind",
		CFL:         DefaultCFL,
		MaxStep:     DefaultMaxStep,
		Duration:    128,
	},
	"top-hat": {
		Name:        "top-hat",
		Description: "discontinuous hat carried by large semi-Lagrangian steps",
		Grid:        GridConfig{Dims: []int{200}, Spacing: []float64{1}},
		Boundaries:  []BoundaryConfig{{Kind: "periodic"}},
		Initial:     InitialConfig{Kind: "top-hat", Amplitude: 1, Center: []float64{50}, Width: 30},
		Flow:        FlowConfig{Kind: "uniform", Velocity: []float64{1}},
		Scheme:      "semi-lagrangian",
		CFL:         DefaultCFL,
		MaxStep:     5,
		Duration:    200,
	},
	"step-inflow": {
		Name:        "step-inflow",
		Description: "front entering an initially empty domain through a fixed-value wall",
		Grid:        GridConfig{Dims: []int{160}, Spacing: []float64{1}},
		Boundaries:  []BoundaryConfig{{Kind: "fixed", Value: 2}},
		Initial:     InitialConfig{Kind: "zero"},
		Flow:        FlowConfig{Kind: "uniform", Velocity: []float64{1}},
		Scheme:      "upwind",
		CFL:         DefaultCFL,
		MaxStep:     DefaultMaxStep,
		Duration:    120,
	},
	"rotating-cone": {
		Name:        "rotating-cone",
		Description: "cone in solid-body rotation, one revolution per run",
		Grid:        GridConfig{Dims: []int{101, 101}, Spacing: []float64{1, 1}},
		Boundaries:  []BoundaryConfig{{Kind: "fixed", Value: 0}, {Kind: "fixed", Value: 0}},
		Initial:     InitialConfig{Kind: "cone", Amplitude: 1, Center: []float64{75, 50}, Width: 15},
		Flow:        FlowConfig{Kind: "rotation", Omega: 0.0628, Center: []float64{50, 50}},
		Scheme:      "semi-lagrangian",
		CFL:         DefaultCFL,
		MaxStep:     0.5,
		Duration:    100,
	},
	"shear-sheet": {
		Name:        "shear-sheet",
		Description: "blob stretched by a self-advecting shear layer",
		Grid:        GridConfig{Dims: []int{128, 128}, Spacing: []float64{1, 1}},
		Boundaries:  []BoundaryConfig{{Kind: "periodic"}, {Kind: "periodic"}},
		Initial:     InitialConfig{Kind: "gaussian", Amplitude: 1, Center: []float64{64, 64}, Width: 10},
		Flow:        FlowConfig{Kind: "shear", Rate: 0.05, Center: []float64{64, 64}},
		Scheme:      "lax-wendroff",
		Limiter:     true,
		SelfAdvect:  true,
		CFL:         0.5,
		MaxStep:     DefaultMaxStep,
		Duration:    60,
	},
	"drift-cube": {
		Name:        "drift-cube",
		Description: "gaussian blob drifting diagonally through a periodic 3D box",
		Grid:        GridConfig{Dims: []int{48, 48, 48}, Spacing: []float64{1, 1, 1}},
		Boundaries:  []BoundaryConfig{{Kind: "periodic"}, {Kind: "periodic"}, {Kind: "periodic"}},
		Initial:     InitialConfig{Kind: "gaussian", Amplitude: 1, Center: []float64{24, 24, 24}, Width: 5},
		Flow:        FlowConfig{Kind: "uniform", Velocity: []float64{1, 0.5, 0.25}},
		Scheme:      "semi-lagrangian",
		CFL:         DefaultCFL,
		MaxStep:     2,
		Duration:    48,
	},
}

// Get returns a mutable copy of the named preset.
func Get(name string) (*Scenario, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("scenario: unknown preset: %s", name)
	}
	return p.Clone(), nil
}

// List returns the preset names in sorted order.
func List() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/meanfield/grid"
	"github.com/katalvlaran/meanfield/hft"
	"github.com/katalvlaran/meanfield/picard"
	"github.com/katalvlaran/meanfield/price"
)

// scenario mirrors the YAML layout of a simulation scenario file.
type scenario struct {
	Grid   gridConfig   `yaml:"grid" json:"grid"`
	Params paramsConfig `yaml:"params" json:"params"`
	Solver solverConfig `yaml:"solver" json:"solver"`
}

type gridConfig struct {
	XMin    float64 `yaml:"x_min" json:"x_min"`
	XMax    float64 `yaml:"x_max" json:"x_max"`
	NX      int     `yaml:"nx" json:"nx"`
	Horizon float64 `yaml:"T" json:"T"`
	NT      int     `yaml:"nt" json:"nt"`
	BC      string  `yaml:"bc" json:"bc"`
}

type paramsConfig struct {
	Nu     float64 `yaml:"nu" json:"nu"`
	Phi    float64 `yaml:"phi" json:"phi"`
	GammaT float64 `yaml:"gamma_T" json:"gamma_T"`
	Eta0   float64 `yaml:"eta0" json:"eta0"`
	Eta1   float64 `yaml:"eta1" json:"eta1"`
	M0Mean float64 `yaml:"m0_mean" json:"m0_mean"`
	M0Std  float64 `yaml:"m0_std" json:"m0_std"`
}

// solverConfig keeps zero values for knobs the scenario omits; the core's
// option normalization resolves those to its documented defaults.
// UseDynamicEta defaults to true, hence the pointer.
type solverConfig struct {
	MaxIter       int     `yaml:"max_iter" json:"max_iter"`
	Tol           float64 `yaml:"tol" json:"tol"`
	RelativeTol   float64 `yaml:"relative_tol" json:"relative_tol"`
	Mix           float64 `yaml:"mix" json:"mix"`
	MixMin        float64 `yaml:"mix_min" json:"mix_min"`
	MixDecay      float64 `yaml:"mix_decay" json:"mix_decay"`
	StagnationTol float64 `yaml:"stagnation_tol" json:"stagnation_tol"`
	HJBInner      int     `yaml:"hjb_inner" json:"hjb_inner"`
	HJBTol        float64 `yaml:"hjb_tol" json:"hjb_tol"`
	UseDynamicEta *bool   `yaml:"use_dynamic_eta" json:"use_dynamic_eta"`
	VelocityGuess float64 `yaml:"velocity_guess" json:"velocity_guess"`

	// Price-clearing stage, consulted only with --endogenous-price.
	Supply           yaml.Node `yaml:"supply" json:"-"`
	PriceSensitivity float64   `yaml:"price_sensitivity" json:"price_sensitivity"`
	PriceBracket     []float64 `yaml:"price_bracket" json:"price_bracket"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var cfg scenario
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	return &cfg, nil
}

func (c *scenario) buildGrid() (*grid.Grid1D, error) {
	bc, err := grid.ParseBoundary(c.Grid.BC)
	if err != nil {
		return nil, fmt.Errorf("boundary %q: %w", c.Grid.BC, err)
	}

	return grid.New(c.Grid.XMin, c.Grid.XMax, c.Grid.NX, c.Grid.Horizon, c.Grid.NT, bc)
}

func (c *scenario) buildParams() hft.Params {
	p := hft.Params{
		Nu:     c.Params.Nu,
		Phi:    c.Params.Phi,
		GammaT: c.Params.GammaT,
		Eta0:   c.Params.Eta0,
		Eta1:   c.Params.Eta1,
		M0Mean: c.Params.M0Mean,
		M0Std:  c.Params.M0Std,
	}
	if p.M0Std == 0 {
		p.M0Std = 1.0
	}

	return p
}

func (c *scenario) buildSolverOptions() picard.Options {
	opts := picard.DefaultOptions()
	s := c.Solver
	if s.MaxIter > 0 {
		opts.MaxIter = s.MaxIter
	}
	if s.Tol > 0 {
		opts.Tol = s.Tol
	}
	opts.RelativeTol = s.RelativeTol
	if s.Mix > 0 {
		opts.Mix = s.Mix
	}
	if s.MixMin > 0 {
		opts.MixMin = s.MixMin
	}
	if s.MixDecay > 0 {
		opts.MixDecay = s.MixDecay
	}
	if s.StagnationTol > 0 {
		opts.StagnationTol = s.StagnationTol
	}
	if s.HJBInner > 0 {
		opts.HJB.MaxInner = s.HJBInner
	}
	if s.HJBTol > 0 {
		opts.HJB.Tol = s.HJBTol
	}

	return opts
}

func (c *scenario) dynamicEta() bool {
	if c.Solver.UseDynamicEta == nil {
		return true
	}

	return *c.Solver.UseDynamicEta
}

// supplySchedule resolves the scenario's supply entry onto the time grid:
// a scalar is broadcast, a list of matching length is taken verbatim, and a
// coarse list is linearly interpolated onto the nt+1 time levels. A missing
// entry means zero net supply.
func (c *scenario) supplySchedule(g *grid.Grid1D) ([]float64, error) {
	node := c.Solver.Supply
	levels := g.NT + 1

	switch node.Kind {
	case 0: // absent
		return make([]float64, levels), nil
	case yaml.ScalarNode:
		var value float64
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("supply scalar: %w", err)
		}
		schedule := make([]float64, levels)
		for n := range schedule {
			schedule[n] = value
		}
		return schedule, nil
	case yaml.SequenceNode:
		var coarse []float64
		if err := node.Decode(&coarse); err != nil {
			return nil, fmt.Errorf("supply list: %w", err)
		}
		return resampleSchedule(coarse, g)
	default:
		return nil, fmt.Errorf("supply: unsupported YAML node kind %d", node.Kind)
	}
}

// resampleSchedule maps a coarse schedule onto the grid's time levels by
// linear interpolation over [0, horizon].
func resampleSchedule(coarse []float64, g *grid.Grid1D) ([]float64, error) {
	levels := g.NT + 1
	switch len(coarse) {
	case 0:
		return make([]float64, levels), nil
	case 1:
		schedule := make([]float64, levels)
		for n := range schedule {
			schedule[n] = coarse[0]
		}
		return schedule, nil
	case levels:
		out := make([]float64, levels)
		copy(out, coarse)
		return out, nil
	}

	step := g.Horizon / float64(len(coarse)-1)
	schedule := make([]float64, levels)
	for n, t := range g.T {
		pos := t / step
		i := int(pos)
		if i >= len(coarse)-1 {
			schedule[n] = coarse[len(coarse)-1]
			continue
		}
		frac := pos - float64(i)
		schedule[n] = coarse[i] + frac*(coarse[i+1]-coarse[i])
	}

	return schedule, nil
}

func (c *scenario) priceBracket() [2]float64 {
	if len(c.Solver.PriceBracket) == 2 {
		return [2]float64{c.Solver.PriceBracket[0], c.Solver.PriceBracket[1]}
	}

	return [2]float64{price.DefaultBracketLow, price.DefaultBracketHigh}
}

func (c *scenario) priceSensitivity() float64 {
	if c.Solver.PriceSensitivity != 0 {
		return c.Solver.PriceSensitivity
	}

	return 1.0
}

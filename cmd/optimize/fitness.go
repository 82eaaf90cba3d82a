package main

import (
	"log/slog"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
	"github.com/mitsuyukiLab/tpg-ship-sim/sim"
)

// failedFitness is returned when a candidate design cannot be simulated.
const failedFitness = 1e9

// FitnessEvaluator runs one simulation per candidate design and scores
// it by the break-even unit price of the delivered energy.
type FitnessEvaluator struct {
	params  *ParamVector
	baseCfg *config.Config

	lastObjective sim.Objective
	hasLast       bool
}

// NewFitnessEvaluator creates an evaluator over a base configuration.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{params: params, baseCfg: baseCfg}
}

// Evaluate runs the simulation with the given raw parameter values and
// returns the value to minimize.
func (e *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := *e.baseCfg
	e.params.ApplyToConfig(&cfg, raw)

	s, err := sim.New(&cfg, nil)
	if err != nil {
		slog.Error("candidate rejected", "err", err)
		return failedFitness
	}
	if err := s.Run(); err != nil {
		slog.Error("candidate run failed", "err", err)
		return failedFitness
	}

	obj := s.Evaluate()
	e.lastObjective = obj
	e.hasLast = true
	return obj.AppropriateUnitPrice
}

// LastObjective returns the full breakdown of the most recent evaluation.
func (e *FitnessEvaluator) LastObjective() (sim.Objective, bool) {
	return e.lastObjective, e.hasLast
}

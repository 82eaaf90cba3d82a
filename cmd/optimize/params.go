// Package main provides CMA-ES optimization of the fleet design.
package main

import (
	"math"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Storage amounts are in GWh; hull count and storage method stay locked
// to the base config.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Generation ship design
			{Name: "tpg_max_storage_gwh", Path: "tpg_ship.max_storage_wh", Min: 10, Max: 300, Default: 50},
			{Name: "ep_max_storage_gwh", Path: "tpg_ship.electric_propulsion_max_storage_wh", Min: 0.5, Max: 5, Default: 1.5},
			{Name: "sail_num", Path: "tpg_ship.sail_num", Min: 10, Max: 80, Default: 40},
			{Name: "sail_area_m2", Path: "tpg_ship.sail_area", Min: 600, Max: 1200, Default: 880},
			{Name: "turbine_radius_m", Path: "tpg_ship.generator_turbine_radius", Min: 5, Max: 25, Default: 10},
			// Operating policy
			{Name: "return_speed_kt", Path: "tpg_ship.return_speed_kt", Min: 6, Max: 18, Default: 12},
			{Name: "max_speed_kt", Path: "tpg_ship.max_speed_kt", Min: 12, Max: 24, Default: 20},
			{Name: "forecast_weight", Path: "tpg_ship.forecast_weight", Min: 10, Max: 90, Default: 22},
			{Name: "govia_base_judge_per", Path: "tpg_ship.govia_base_judge_storage_per", Min: 10, Max: 90, Default: 35},
			{Name: "judge_time_times", Path: "tpg_ship.judge_time_times", Min: 1.0, Max: 2.5, Default: 1.1},
			{Name: "operational_reserve_per", Path: "tpg_ship.operational_reserve_percentage", Min: 0, Max: 20, Default: 2},
			// Shore side
			{Name: "storage_base_gwh", Path: "storage_base.max_storage_wh", Min: 50, Max: 1500, Default: 300},
			{Name: "call_per", Path: "storage_base.call_per", Min: 20, Max: 100, Default: 100},
			{Name: "support1_storage_gwh", Path: "support_ship_1.max_storage_wh", Min: 10, Max: 300, Default: 50},
			{Name: "support1_speed_kt", Path: "support_ship_1.speed_kt", Min: 8, Max: 24, Default: 14},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	v := pv.Clamp(values)

	cfg.TPGShip.MaxStorageWh = v[0] * 1e9
	cfg.TPGShip.ElectricPropulsionMaxStorageWh = v[1] * 1e9
	cfg.TPGShip.SailNum = int(math.Round(v[2]))
	cfg.TPGShip.SailArea = v[3]
	cfg.TPGShip.GeneratorTurbineRadius = v[4]

	cfg.TPGShip.ReturnSpeedKt = v[5]
	cfg.TPGShip.MaxSpeedKt = v[6]
	cfg.TPGShip.ForecastWeight = v[7]
	cfg.TPGShip.GoviaBaseJudgeStoragePer = v[8]
	cfg.TPGShip.JudgeTimeTimes = v[9]
	cfg.TPGShip.OperationalReservePercentage = v[10]

	cfg.StorageBase.MaxStorageWh = v[11] * 1e9
	cfg.StorageBase.CallPer = v[12]
	cfg.SupportShip1.MaxStorageWh = v[13] * 1e9
	cfg.SupportShip1.SpeedKt = v[14]
}

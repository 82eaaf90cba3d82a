// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Storage methods for the energy carrier.
const (
	StorageElectric   = 1 // battery containers
	StorageMCH        = 2 // methylcyclohexane
	StorageMethane    = 3 // liquefied methane
	StorageMethanol   = 4
	StorageEGasoline  = 5 // octane surrogate
)

// Base types.
const (
	BaseStorage  = 1
	BaseSupply   = 2
	BaseCombined = 3
)

// Config holds all simulation configuration parameters.
type Config struct {
	Simulation   SimulationConfig  `yaml:"simulation"`
	Forecaster   ForecasterConfig  `yaml:"forecaster"`
	TPGShip      TPGShipConfig     `yaml:"tpg_ship"`
	StorageBase  BaseConfig        `yaml:"storage_base"`
	SupplyBase   BaseConfig        `yaml:"supply_base"`
	SupportShip1 SupportShipConfig `yaml:"support_ship_1"`
	SupportShip2 SupportShipConfig `yaml:"support_ship_2"`
	Output       OutputConfig      `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SimulationConfig holds run window and data source settings.
type SimulationConfig struct {
	StartTime       string `yaml:"start_time"` // UTC, "2006-01-02 15:04:05"
	EndTime         string `yaml:"end_time"`
	TimeStepHours   int    `yaml:"time_step_hours"`
	TyphoonDataPath string `yaml:"typhoon_data_path"`
	WindDataDir     string `yaml:"wind_data_dir"`     // directory of monthly ERA5 CSVs
	WindFilePattern string `yaml:"wind_file_pattern"` // e.g. era5_testdata_E180W90S0W90_%d_%d.csv
}

// ForecasterConfig holds typhoon track forecast settings.
type ForecasterConfig struct {
	ForecastTimeHours int     `yaml:"forecast_time_hours"` // forecast window length
	ErrorSlopeKmPerH  float64 `yaml:"error_slope_km_per_hour"`
	Seed              int64   `yaml:"seed"` // perturbation seed, fixed for reproducibility
}

// TPGShipConfig holds the generation ship design and policy parameters.
type TPGShipConfig struct {
	InitialLat float64 `yaml:"initial_lat"`
	InitialLon float64 `yaml:"initial_lon"`
	StandbyLat float64 `yaml:"standby_lat"`
	StandbyLon float64 `yaml:"standby_lon"`

	HullNum       int     `yaml:"hull_num"`       // 1 monohull, 2 catamaran
	StorageMethod int     `yaml:"storage_method"` // 1..5, see Storage* constants
	MaxStorageWh  float64 `yaml:"max_storage_wh"`

	ElectricPropulsionMaxStorageWh float64 `yaml:"electric_propulsion_max_storage_wh"`
	TrustEfficiency                float64 `yaml:"trust_efficiency"`
	CarrierToElectEfficiency       float64 `yaml:"carrier_to_elect_efficiency"`
	ElectToCarrierEfficiency       float64 `yaml:"elect_to_carrier_efficiency"`

	GeneratorTurbineRadius      float64 `yaml:"generator_turbine_radius"` // m
	GeneratorEfficiency         float64 `yaml:"generator_efficiency"`
	GeneratorDragCoefficient    float64 `yaml:"generator_drag_coefficient"`
	GeneratorPillarChord        float64 `yaml:"generator_pillar_chord"`         // m
	GeneratorPillarMaxThickness float64 `yaml:"generator_pillar_max_thickness"` // m
	GeneratorPillarWidth        float64 `yaml:"generator_pillar_width"`         // m
	GeneratorNum                int     `yaml:"generator_num"`

	SailArea  float64 `yaml:"sail_area"`  // m^2 per sail
	SailSpace float64 `yaml:"sail_space"` // spacing in sail widths
	SailSteps int     `yaml:"sail_steps"` // reefing steps for head wind
	SailNum   int     `yaml:"sail_num"`   // requested count, capped by deck area

	ReturnSpeedKt float64 `yaml:"return_speed_kt"`
	MaxSpeedKt    float64 `yaml:"max_speed_kt"`

	ForecastWeight               float64 `yaml:"forecast_weight"`                 // 0..100
	TyphoonEffectiveRangeKm      float64 `yaml:"typhoon_effective_range_km"`      // generation radius
	GoviaBaseJudgeStoragePer     float64 `yaml:"govia_base_judge_storage_per"`    // %
	JudgeTimeTimes               float64 `yaml:"judge_time_times"`                // catch/arrival feasibility cap
	OperationalReservePercentage float64 `yaml:"operational_reserve_percentage"`  // % of max storage kept aboard
}

// BaseConfig holds a storage or supply base.
type BaseConfig struct {
	Type         int     `yaml:"type"` // 1 storage, 2 supply, 3 combined
	Lat          float64 `yaml:"lat"`
	Lon          float64 `yaml:"lon"`
	MaxStorageWh float64 `yaml:"max_storage_wh"`
	CallPer      float64 `yaml:"call_per"` // dispatch threshold, % of support-ship-1 capacity
}

// SupportShipConfig holds one carrier shuttle. Zero capacity disables the ship.
type SupportShipConfig struct {
	MaxStorageWh         float64 `yaml:"max_storage_wh"`
	SpeedKt              float64 `yaml:"speed_kt"`
	EPMaxStorageWh       float64 `yaml:"ep_max_storage_wh"`
	ElectTrustEfficiency float64 `yaml:"elect_trust_efficiency"`
}

// OutputConfig holds telemetry destinations.
type OutputConfig struct {
	Dir            string `yaml:"dir"`
	ShipLog        string `yaml:"ship_log"`
	StorageBaseLog string `yaml:"storage_base_log"`
	SupplyBaseLog  string `yaml:"supply_base_log"`
	SupportLog1    string `yaml:"support_log_1"`
	SupportLog2    string `yaml:"support_log_2"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	StartUnix     int64
	EndUnix       int64
	TimeStepUnix  int64
	RecordCount   int
	SimYears      float64 // run length in years, for cost amortization
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

const timeLayout = "2006-01-02 15:04:05"

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	start, err := time.ParseInLocation(timeLayout, c.Simulation.StartTime, time.UTC)
	if err != nil {
		return fmt.Errorf("parsing start_time: %w", err)
	}
	end, err := time.ParseInLocation(timeLayout, c.Simulation.EndTime, time.UTC)
	if err != nil {
		return fmt.Errorf("parsing end_time: %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("end_time %s is not after start_time %s", c.Simulation.EndTime, c.Simulation.StartTime)
	}
	if c.Simulation.TimeStepHours <= 0 {
		return fmt.Errorf("time_step_hours must be positive, got %d", c.Simulation.TimeStepHours)
	}

	c.Derived.StartUnix = start.Unix()
	c.Derived.EndUnix = end.Unix()
	c.Derived.TimeStepUnix = int64(c.Simulation.TimeStepHours) * 3600
	c.Derived.RecordCount = int((c.Derived.EndUnix-c.Derived.StartUnix)/c.Derived.TimeStepUnix) + 1
	c.Derived.SimYears = end.Sub(start).Hours() / (24 * 365)

	if c.TPGShip.HullNum != 1 && c.TPGShip.HullNum != 2 {
		return fmt.Errorf("hull_num must be 1 or 2, got %d", c.TPGShip.HullNum)
	}
	if c.TPGShip.StorageMethod < StorageElectric || c.TPGShip.StorageMethod > StorageEGasoline {
		return fmt.Errorf("storage_method must be 1..5, got %d", c.TPGShip.StorageMethod)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

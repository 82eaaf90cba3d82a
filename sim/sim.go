// Package sim runs the typhoon power generation fleet simulation and
// scores the outcome.
package sim

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mitsuyukiLab/tpg-ship-sim/base"
	"github.com/mitsuyukiLab/tpg-ship-sim/config"
	"github.com/mitsuyukiLab/tpg-ship-sim/ship"
	"github.com/mitsuyukiLab/tpg-ship-sim/storm"
	"github.com/mitsuyukiLab/tpg-ship-sim/support"
	"github.com/mitsuyukiLab/tpg-ship-sim/telemetry"
	"github.com/mitsuyukiLab/tpg-ship-sim/wind"
)

// progressEveryTicks spaces the progress log entries.
const progressEveryTicks = 500

// Simulator owns the agents and data sources for one run.
type Simulator struct {
	cfg *config.Config

	catalog    *storm.Catalog
	forecaster *storm.Forecaster
	genesis    map[int]int64

	windLoader *wind.Loader
	windField  *wind.Field

	TPGShip     *ship.Ship
	StorageBase *base.Base
	SupplyBase  *base.Base
	Support1    *support.Ship
	Support2    *support.Ship

	out   *telemetry.OutputManager
	Stats telemetry.RunStats

	now       int64
	windYear  int
	windMonth time.Month
}

// New loads the typhoon tracks and builds the fleet. out may be nil to
// run without CSV logging.
func New(cfg *config.Config, out *telemetry.OutputManager) (*Simulator, error) {
	tracks, err := storm.LoadTracks(cfg.Simulation.TyphoonDataPath)
	if err != nil {
		return nil, fmt.Errorf("loading typhoon tracks: %w", err)
	}

	st := base.New(cfg.StorageBase)
	stPos := st.Position()
	catalog := storm.NewCatalog(tracks)

	s := &Simulator{
		cfg:     cfg,
		catalog: catalog,
		forecaster: storm.NewForecaster(catalog,
			cfg.Forecaster.ForecastTimeHours,
			cfg.Forecaster.ErrorSlopeKmPerH,
			cfg.Forecaster.Seed),
		genesis: tracks.GenesisTimes(),

		windLoader: &wind.Loader{
			Dir:     cfg.Simulation.WindDataDir,
			Pattern: cfg.Simulation.WindFilePattern,
		},

		TPGShip:     ship.New(cfg.TPGShip, stPos.Lat, stPos.Lon),
		StorageBase: st,
		SupplyBase:  base.New(cfg.SupplyBase),

		out: out,
		now: cfg.Derived.StartUnix,
	}

	spPos := s.SupplyBase.Position()
	s.Support1 = support.New(cfg.SupportShip1, cfg.TPGShip.StorageMethod, spPos.Lat, spPos.Lon)
	s.Support2 = support.New(cfg.SupportShip2, cfg.TPGShip.StorageMethod, spPos.Lat, spPos.Lon)

	return s, nil
}

// reloadWind swaps in the wind field for the month holding now.
func (s *Simulator) reloadWind() error {
	t := time.Unix(s.now, 0).UTC()
	if s.windField != nil && t.Year() == s.windYear && t.Month() == s.windMonth {
		return nil
	}

	field, err := s.windLoader.Load(t.Year(), int(t.Month()))
	if err != nil {
		return fmt.Errorf("loading wind for %d-%02d: %w", t.Year(), t.Month(), err)
	}
	s.windField = field
	s.windYear = t.Year()
	s.windMonth = t.Month()
	slog.Info("wind field loaded", "year", s.windYear, "month", int(s.windMonth))
	return nil
}

// step advances the whole fleet one tick and writes the logs.
func (s *Simulator) step() error {
	if err := s.reloadWind(); err != nil {
		return err
	}

	s.catalog.Advance(s.now)
	forecast := s.forecaster.CreateForecast(s.now)

	var lastForecast int64
	for _, p := range forecast {
		if p.ValidUnix > lastForecast {
			lastForecast = p.ValidUnix
		}
	}

	s.TPGShip.Step(ship.Env{
		Now:          s.now,
		StepHours:    s.cfg.Simulation.TimeStepHours,
		Forecast:     forecast,
		Wind:         s.windField,
		BaseHeadroom: s.StorageBase.Headroom(),
		GenesisTimes: s.genesis,
		LastForecast: lastForecast,
	})

	stepHours := s.cfg.Simulation.TimeStepHours
	s.StorageBase.Operate(s.TPGShip, s.Support1, s.Support2, stepHours)
	s.SupplyBase.Operate(s.TPGShip, s.Support1, s.Support2, stepHours)

	s.now += s.cfg.Derived.TimeStepUnix
	return s.record()
}

// record snapshots every agent at the current time.
func (s *Simulator) record() error {
	shipRec := telemetry.NewShipRecord(s.now, s.TPGShip)
	s.Stats.Add(shipRec)

	if err := s.out.WriteShip(shipRec); err != nil {
		return err
	}
	if err := s.out.WriteStorageBase(telemetry.NewBaseRecord(s.now, s.StorageBase)); err != nil {
		return err
	}
	if err := s.out.WriteSupplyBase(telemetry.NewBaseRecord(s.now, s.SupplyBase)); err != nil {
		return err
	}
	if s.Support1.Enabled() {
		if err := s.out.WriteSupport(1, telemetry.NewSupportRecord(s.now, s.Support1)); err != nil {
			return err
		}
	}
	if s.Support2.Enabled() {
		if err := s.out.WriteSupport(2, telemetry.NewSupportRecord(s.now, s.Support2)); err != nil {
			return err
		}
	}
	return nil
}

// Run drives the simulation over the configured window.
func (s *Simulator) Run() error {
	ticks := s.cfg.Derived.RecordCount
	slog.Info("simulation start",
		"ticks", ticks,
		"step_hours", s.cfg.Simulation.TimeStepHours,
		"rated_output_w", s.TPGShip.Design.RatedOutputW,
	)

	for i := 0; i < ticks; i++ {
		if err := s.step(); err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		if i > 0 && i%progressEveryTicks == 0 {
			slog.Info("simulation progress",
				"tick", i,
				"active_typhoons", s.catalog.ActiveCount(),
				"ship_state", s.TPGShip.State,
				"storage_per", s.TPGShip.StoragePercentage(),
				"base_storage_wh", s.StorageBase.StorageWh,
			)
		}
	}

	slog.Info("simulation done",
		"total_generation_wh", s.TPGShip.SumGeneratedWh,
		"total_supply_wh", s.SupplyBase.TotalSupplyWh,
	)
	return nil
}

// Summary aggregates the run's telemetry.
func (s *Simulator) Summary() telemetry.Summary {
	hours := float64(s.cfg.Derived.EndUnix-s.cfg.Derived.StartUnix) / 3600
	return s.Stats.Summarize(s.TPGShip.Design.RatedOutputW, hours)
}

package ship

import (
	"github.com/mitsuyukiLab/tpg-ship-sim/config"
	"github.com/mitsuyukiLab/tpg-ship-sim/geo"
	"github.com/mitsuyukiLab/tpg-ship-sim/storm"
	"github.com/mitsuyukiLab/tpg-ship-sim/wind"
)

// Operational states.
const (
	StateStandby    = 0
	StateGenerating = 1
	StateChasing    = 2
	StateTransit    = 4
)

// Decision thresholds.
const (
	fullStoragePer     = 100.0 // % of carrier storage that forces a return
	bearingJudgeDeg    = 10.0  // base-heading alignment for the via-base detour
	arrivalSnapKm      = 50.0  // forecast position this close counts as caught
	typhoonMeanLifeH   = 120.0 // assumed remaining life past the forecast edge
	minusStoragePerHit = 100.0 // penalty per tick spent below empty
)

// Target is one scored typhoon forecast point.
type Target struct {
	Number     int
	Lat        float64
	Lon        float64
	ValidUnix  int64
	DistanceKm float64
	CatchH     float64
	GeneH      float64
	TimeEffect float64
}

// Env is everything outside the ship that one tick can see.
type Env struct {
	Now           int64
	StepHours     int
	Forecast      []storm.ForecastPoint
	Wind          *wind.Field
	BaseHeadroom  float64 // Wh the storage base can still absorb
	GenesisTimes  map[int]int64
	LastForecast  int64 // latest valid time in Forecast
}

// Ship is the typhoon power generation ship.
type Ship struct {
	Design *Design
	cfg    config.TPGShipConfig

	Lat float64
	Lon float64

	State   int
	SpeedKt float64

	// Carrier and propulsion reservoirs.
	StorageWh   float64
	EPStorageWh float64

	// Chase bookkeeping.
	Target         Target
	HasTarget      bool
	GoBase         bool
	ViaBase        bool // chasing a typhoon by way of the storage base
	StandbyViaBase bool
	BaseLat        float64
	BaseLon        float64
	StandbyLat     float64
	StandbyLon     float64

	// Current navigation destination.
	targetLat float64
	targetLon float64

	// Per-tick telemetry, overwritten every Step.
	WindU          float64
	WindV          float64
	WindState      float64 // wind regime code: 1 cross, 2 tail, 3/3.5 head, 0 calm
	BrakeWindWorkWh float64 // negative when the sails push the ship
	GeneratedWh    float64
	LossWh         float64
	SupplyElectWh  float64

	// Cumulative counters.
	SumGeneratedWh      float64
	SumGeneCarrierWh    float64
	SumLossWh           float64
	SumSupplyWh         float64
	TotalGeneHours      float64
	TotalLossHours      float64
	MinusStoragePenalty float64

	// Set by the state decision, consumed by the energy ledger.
	geneJudge bool
	lossJudge bool
}

// New builds the ship at its initial position with full batteries and an
// empty carrier hold.
func New(cfg config.TPGShipConfig, baseLat, baseLon float64) *Ship {
	return &Ship{
		Design:      NewDesign(cfg),
		cfg:         cfg,
		Lat:         cfg.InitialLat,
		Lon:         cfg.InitialLon,
		State:       StateStandby,
		StorageWh:   cfg.MaxStorageWh * cfg.OperationalReservePercentage / 100,
		EPStorageWh: cfg.ElectricPropulsionMaxStorageWh,
		BaseLat:     baseLat,
		BaseLon:     baseLon,
		StandbyLat:  cfg.StandbyLat,
		StandbyLon:  cfg.StandbyLon,
		targetLat:   baseLat,
		targetLon:   baseLon,
	}
}

// StoragePercentage is the carrier fill level in percent. It can go
// negative when propulsion draws on an empty hold.
func (s *Ship) StoragePercentage() float64 {
	return s.StorageWh / s.cfg.MaxStorageWh * 100
}

// EPStoragePercentage is the propulsion battery fill level in percent.
func (s *Ship) EPStoragePercentage() float64 {
	return s.EPStorageWh / s.cfg.ElectricPropulsionMaxStorageWh * 100
}

// Position returns the ship position as a geo point.
func (s *Ship) Position() geo.Point {
	return geo.Point{Lat: s.Lat, Lon: s.Lon}
}

// Step advances the ship one tick: pick the next state and destination,
// move, then settle the energy ledger for the distance covered.
func (s *Ship) Step(env Env) {
	before := s.Position()
	s.nextState(env)

	s.settleEnergy(env, before)

	if s.StoragePercentage() < 0 {
		s.MinusStoragePenalty += minusStoragePerHit
	}
}

// Package ship implements the typhoon power generation ship: its design
// sizing, autonomous behavior and per-tick energy bookkeeping.
package ship

import (
	"math"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
	"github.com/mitsuyukiLab/tpg-ship-sim/geo"
	"github.com/mitsuyukiLab/tpg-ship-sim/hull"
)

// Environment constants shared by the sizing and the per-tick physics.
const (
	airDensity         = 1.225    // kg/m^3
	seaDensity         = 1025.0   // kg/m^3
	kinematicViscosity = 1.139e-6 // m^2/s

	// Design point while riding a typhoon.
	generatingWindSpeedMps = 25.0
	generatingWindDirDeg   = 80.0
	limitShipSpeedKt       = 32.0 // container-ship hull speed cap

	// Reference wing sail (WindChallenger class).
	baseSailArea   = 880.0 // m^2
	baseSailWidth  = 15.0  // m
	baseSailHeight = 50.0  // m
)

// Sail aerodynamic coefficients per wind regime.
const (
	crossLiftCoeff = 1.8
	crossDragCoeff = 0.4
	tailDragCoeff  = 1.3
	headLiftCoeff  = 0.5
	headDragCoeff  = 0.1
)

// Design holds everything fixed at construction time: hull dimensions,
// sail layout, drag budgets and the turbine rating.
type Design struct {
	cfg config.TPGShipConfig

	SailNum       int     // possibly capped below the requested count
	SailWidth     float64 // m
	SailHeight    float64 // m
	SailWeight    float64 // t per sail
	SailPenalty   float64 // spacing-density thrust derating
	SailsPerRow   int
	SailRows      int

	ShipDWT   float64 // t, cargo + battery + sails
	HullLOA   float64 // m
	HullB     float64 // m, includes the catamaran correction
	MainWt    float64 // t, carrier cargo
	BatteryWt float64 // t

	InterferenceCoeff  float64
	MaxSpeedPowerW     float64 // hull power at max speed
	GeneratingSpeedKt  float64
	GeneratingSpeedMps float64
	RatedOutputW       float64 // all turbines together
}

// NewDesign sizes the ship from its configuration. The sail count is capped
// by deck area, the generating speed comes from the thrust/drag balance at
// the 25 m/s design wind, and the turbine rating follows from that speed.
func NewDesign(cfg config.TPGShipConfig) *Design {
	d := &Design{cfg: cfg}
	d.SailWeight = 120 * (cfg.SailArea / baseSailArea)

	scale := math.Sqrt(cfg.SailArea / baseSailArea)
	d.SailWidth = baseSailWidth * scale
	d.SailHeight = baseSailHeight * scale

	maxSails := d.maxSailNum()
	d.SailNum = cfg.SailNum
	if d.SailNum > maxSails {
		d.SailNum = maxSails
	}

	d.computeHullSize(d.SailNum)
	d.computeSailPenalty(d.SailNum, maxSails)
	d.InterferenceCoeff = d.interferenceCoefficient()
	d.MaxSpeedPowerW = hull.MaxSpeedPower(
		cfg.StorageMethod, d.ShipDWT, cfg.MaxSpeedKt, cfg.HullNum, d.InterferenceCoeff)

	d.GeneratingSpeedKt = d.generatingSpeed()
	if d.GeneratingSpeedKt > limitShipSpeedKt {
		d.GeneratingSpeedKt = limitShipSpeedKt
	}
	d.GeneratingSpeedMps = geo.KtToMps(d.GeneratingSpeedKt)
	d.RatedOutputW = d.ratedOutput()
	return d
}

// computeHullSize fills DWT and principal dimensions for a sail count.
func (d *Design) computeHullSize(sailNum int) {
	cfg := d.cfg
	d.MainWt = hull.CarrierDWT(cfg.StorageMethod, cfg.MaxStorageWh)
	d.BatteryWt = hull.CarrierDWT(config.StorageElectric, cfg.ElectricPropulsionMaxStorageWh)
	d.ShipDWT = d.MainWt + d.BatteryWt + float64(sailNum)*d.SailWeight

	perBody := d.ShipDWT / float64(cfg.HullNum)
	loa, b := hull.DimensionsFor(cfg.StorageMethod, perBody)
	d.HullLOA = loa
	d.HullB = b
	if cfg.HullNum == 2 {
		// Catamaran deck spans both hulls plus the gap.
		d.HullB = b * 3.5
	}
}

// interferenceCoefficient accounts for wave interference between twin hulls.
func (d *Design) interferenceCoefficient() float64 {
	if d.cfg.HullNum == 1 {
		return 1.0
	}
	perBody := d.ShipDWT / float64(d.cfg.HullNum)
	_, b := hull.DimensionsFor(d.cfg.StorageMethod, perBody)
	gap := d.HullB - 2*b
	return 1.0 + 1.0/(gap/b)
}

// maxSailNum finds the deck-limited sail count by fixed-point iteration:
// the sail count sets the weight, the weight sets the deck, the deck caps
// the sail count.
func (d *Design) maxSailNum() int {
	assumed := 100
	for iter := 0; iter < 64; iter++ {
		d.computeHullSize(assumed)
		loa, b := d.HullLOA, d.HullB

		spacing := d.SailWidth * d.cfg.SailSpace
		var fit int
		if b < spacing {
			fit = int(math.Round(loa / spacing))
		} else {
			fit = int(math.Round(loa/spacing)) * int(math.Round(b/spacing))
		}
		if fit == assumed {
			break
		}
		assumed = fit
	}
	return assumed
}

// computeSailPenalty derives the spacing-density derating for the actual
// sail count on the actual deck.
func (d *Design) computeSailPenalty(sailNum, maxSails int) {
	space := d.cfg.SailSpace
	if sailNum != maxSails {
		// Actual spacing when sailNum sails share the deck evenly.
		space = math.Sqrt(d.HullB*d.HullLOA/float64(sailNum)) / d.SailWidth
	}

	switch {
	case space >= 2:
		d.SailPenalty = 1.0
	case space <= 1:
		d.SailPenalty = 0.6
	default:
		d.SailPenalty = 0.6 - 0.4*(1-space)
	}

	if d.HullB > d.SailWidth*space {
		d.SailsPerRow = int(math.Round(d.HullB / (d.SailWidth * space)))
	} else {
		d.SailsPerRow = 1
	}
	d.SailRows = int(math.Round(d.HullLOA / (d.SailWidth * space)))
}

// generatingSpeed solves the thrust/drag balance at the design wind. The
// best beam-wind angle between 60 and 120 degrees sets the available
// thrust; turbine and hull drag grow with the square of the speed.
func (d *Design) generatingSpeed() float64 {
	cfg := d.cfg

	maxForce := 0.0
	for dir := 60; dir < 120; dir++ {
		lift := 0.5 * airDensity * generatingWindSpeedMps * generatingWindSpeedMps *
			cfg.SailArea * crossLiftCoeff * float64(d.SailNum)
		drag := 0.5 * airDensity * generatingWindSpeedMps * generatingWindSpeedMps *
			cfg.SailArea * crossDragCoeff * float64(d.SailNum)
		angle := float64(dir) * math.Pi / 180
		force := lift*math.Sin(angle) + drag*math.Cos(angle)
		if force > maxForce {
			maxForce = force
		}
	}
	maxForce *= d.SailPenalty

	turbineArea := cfg.GeneratorTurbineRadius * cfg.GeneratorTurbineRadius * math.Pi
	turbineDragCoeff := float64(cfg.GeneratorNum) * 0.5 * seaDensity * turbineArea *
		cfg.GeneratorDragCoefficient

	// Hull drag coefficient from the max-speed power law, converted from a
	// kt to an m/s speed basis.
	hullDragCoeff := d.MaxSpeedPowerW / math.Pow(cfg.MaxSpeedKt, 3)
	hullDragCoeff *= math.Pow(1.94384, 3)

	speedMps := math.Sqrt(maxForce / (turbineDragCoeff + hullDragCoeff))
	return geo.MpsToKt(speedMps)
}

// ratedOutput is the combined turbine output at the generating speed.
func (d *Design) ratedOutput() float64 {
	cfg := d.cfg
	turbineArea := cfg.GeneratorTurbineRadius * cfg.GeneratorTurbineRadius * math.Pi
	return float64(cfg.GeneratorNum) * 0.5 * seaDensity *
		math.Pow(d.GeneratingSpeedMps, 3) * turbineArea * cfg.GeneratorEfficiency
}

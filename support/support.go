// Package support implements the carrier shuttles that move the generation
// ship's output from the storage base to the supply base.
package support

import (
	"math"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
	"github.com/mitsuyukiLab/tpg-ship-sim/geo"
	"github.com/mitsuyukiLab/tpg-ship-sim/hull"
)

// Ship is one support shuttle. A zero MaxStorageWh disables it entirely.
// The shuttle rests at the supply base until the storage base calls it.
type Ship struct {
	cfg           config.SupportShipConfig
	storageMethod int

	Lat float64
	Lon float64

	SupplyLat float64
	SupplyLon float64

	SpeedKt     float64
	StorageWh   float64
	EPStorageWh float64

	// Docking flags. The shuttle starts docked at the supply base.
	ArrivedSupplyBase  bool
	ArrivedStorageBase bool

	// stayTime delays the docking by one tick at either end, standing in
	// for mooring and transfer work.
	stayTime int

	// Cargo announced to the supply base on arrival.
	SupplyElectWh float64

	// Destination of the current leg; HasTarget is false while docked.
	HasTarget bool
	TargetLat float64
	TargetLon float64

	TotalConsumptionWh float64
	TotalReceivedWh    float64

	// Costs in units of 100M JPY, filled by CostCalculate.
	HullLOA            float64
	HullB              float64
	ShipDWT            float64
	BuildingCost       float64
	MaintenanceCost    float64
	TransportationCost float64
}

// New builds a shuttle docked at the supply base with a full battery.
func New(cfg config.SupportShipConfig, storageMethod int, supplyLat, supplyLon float64) *Ship {
	return &Ship{
		cfg:               cfg,
		storageMethod:     storageMethod,
		Lat:               supplyLat,
		Lon:               supplyLon,
		SupplyLat:         supplyLat,
		SupplyLon:         supplyLon,
		EPStorageWh:       cfg.EPMaxStorageWh,
		ArrivedSupplyBase: true,
	}
}

// Enabled reports whether the shuttle exists at all.
func (s *Ship) Enabled() bool {
	return s.cfg.MaxStorageWh != 0
}

// MaxStorageWh is the shuttle's cargo capacity.
func (s *Ship) MaxStorageWh() float64 {
	return s.cfg.MaxStorageWh
}

// StoragePercentage is the cargo fill level in percent, zero for a
// disabled shuttle.
func (s *Ship) StoragePercentage() float64 {
	if s.cfg.MaxStorageWh == 0 {
		return 0
	}
	return s.StorageWh / s.cfg.MaxStorageWh * 100
}

// Position returns the shuttle position.
func (s *Ship) Position() geo.Point {
	return geo.Point{Lat: s.Lat, Lon: s.Lon}
}

// transitConsumption is one tick's propulsion draw in Wh at cruise speed,
// sized on the full-load displacement.
func (s *Ship) transitConsumption(stepHours int) float64 {
	cargoDWT := hull.CarrierDWT(s.storageMethod, s.cfg.MaxStorageWh)
	batteryDWT := hull.CarrierDWT(config.StorageElectric, s.cfg.EPMaxStorageWh)
	s.ShipDWT = cargoDWT + batteryDWT

	powerW := hull.PowerCoefficient(s.storageMethod) *
		math.Pow(s.ShipDWT, 2.0/3.0) * math.Pow(s.SpeedKt, 3)
	return powerW / s.cfg.ElectTrustEfficiency * float64(stepHours)
}

// goStorageBase sails toward the storage base; docking takes an extra
// full tick of mooring before cargo can transfer.
func (s *Ship) goStorageBase(basePos geo.Point, stepHours int) {
	s.SpeedKt = s.cfg.SpeedKt
	s.HasTarget = true
	s.TargetLat = basePos.Lat
	s.TargetLon = basePos.Lon

	hours := geo.Distance(s.Position(), basePos) / geo.KtToKmh(s.SpeedKt)
	s.ArrivedStorageBase = false

	draw := s.transitConsumption(stepHours)
	s.TotalConsumptionWh += draw
	s.EPStorageWh -= draw

	switch {
	case hours <= float64(stepHours) && s.stayTime > 0:
		s.ArrivedStorageBase = true
		s.ArrivedSupplyBase = false
		s.Lat = basePos.Lat
		s.Lon = basePos.Lon
		s.SpeedKt = 0
		s.stayTime = 0
	case hours <= float64(stepHours):
		s.stayTime++
	}
}

// goSupplyBase sails home loaded. Docking dumps the cargo into
// SupplyElectWh and recharges the battery, booking the recharge against
// TotalReceivedWh.
func (s *Ship) goSupplyBase(stepHours int) {
	s.SpeedKt = s.cfg.SpeedKt
	s.HasTarget = true
	s.TargetLat = s.SupplyLat
	s.TargetLon = s.SupplyLon

	home := geo.Point{Lat: s.SupplyLat, Lon: s.SupplyLon}
	hours := geo.Distance(s.Position(), home) / geo.KtToKmh(s.SpeedKt)
	s.ArrivedSupplyBase = false

	draw := s.transitConsumption(stepHours)
	s.TotalConsumptionWh += draw
	s.EPStorageWh -= draw

	switch {
	case hours <= float64(stepHours) && s.stayTime > 0:
		s.ArrivedSupplyBase = true
		s.ArrivedStorageBase = false
		s.Lat = s.SupplyLat
		s.Lon = s.SupplyLon
		s.HasTarget = false
		s.TargetLat = 0
		s.TargetLon = 0
		s.SupplyElectWh = s.StorageWh
		s.TotalReceivedWh += s.cfg.EPMaxStorageWh - s.EPStorageWh
		s.EPStorageWh = s.cfg.EPMaxStorageWh
		s.SpeedKt = 0
		s.stayTime = 0
	case hours <= float64(stepHours):
		s.SupplyElectWh = 0
		s.stayTime++
	default:
		s.SupplyElectWh = 0
	}
}

// Step runs one tick of the shuttle's round trip: outbound when called
// from home, inbound once loaded.
func (s *Ship) Step(basePos geo.Point, stepHours int) {
	switch {
	case !s.ArrivedStorageBase && s.ArrivedSupplyBase:
		s.goStorageBase(basePos, stepHours)
	case s.ArrivedStorageBase && !s.ArrivedSupplyBase:
		s.goSupplyBase(stepHours)
	case !s.ArrivedStorageBase && !s.ArrivedSupplyBase:
		s.goStorageBase(basePos, stepHours)
	default:
		s.ArrivedSupplyBase = false
		s.ArrivedStorageBase = false
	}

	if s.HasTarget {
		dest := geo.Point{Lat: s.TargetLat, Lon: s.TargetLon}
		next := geo.Advance(s.Position(), dest, geo.KtToKmh(s.SpeedKt), float64(stepHours))
		s.Lat = next.Lat
		s.Lon = next.Lon
	}
}

// CostCalculate fills the shuttle's build, upkeep and haulage costs, in
// units of 100M JPY. Electricity drawn in transit is bought back at
// 25 JPY/kWh.
func (s *Ship) CostCalculate() {
	cargoDWT := hull.CarrierDWT(s.storageMethod, s.cfg.MaxStorageWh)
	batteryDWT := hull.CarrierDWT(config.StorageElectric, s.cfg.EPMaxStorageWh)
	s.ShipDWT = cargoDWT + batteryDWT
	s.HullLOA, s.HullB = hull.DimensionsFor(s.storageMethod, s.ShipDWT)

	var hullCost float64
	switch s.storageMethod {
	case config.StorageElectric:
		hullCost = 0.00483*math.Pow(s.ShipDWT, 0.878)*1e6*160 +
			500000*s.HullLOA*s.HullB
	case config.StorageMethane:
		hullCost = 4.41*0.212*math.Pow(s.ShipDWT, 0.5065)*1e6*160 +
			500000*s.HullLOA*s.HullB
	default:
		hullCost = 0.212*math.Pow(s.ShipDWT, 0.5065)*1e6*160 +
			500000*s.HullLOA*s.HullB
	}
	motorCost := 0.1 * hullCost

	nBattery := math.Ceil(s.cfg.EPMaxStorageWh / 1e6 / 240)
	batteryCost := 240e3 * 75 * nBattery * 160

	s.BuildingCost = (hullCost + motorCost + batteryCost) / 1e8
	s.MaintenanceCost = s.BuildingCost * 0.03
	s.TransportationCost = s.TotalConsumptionWh / 1000 * 25 / 1e8
}

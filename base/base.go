// Package base implements the shore side of the chain: the storage base
// that receives the generation ship's cargo and the supply base that sells
// what the shuttles bring in.
package base

import (
	"math"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
	"github.com/mitsuyukiLab/tpg-ship-sim/geo"
	"github.com/mitsuyukiLab/tpg-ship-sim/hull"
	"github.com/mitsuyukiLab/tpg-ship-sim/ship"
	"github.com/mitsuyukiLab/tpg-ship-sim/support"
)

// Base is a storage, supply or combined base depending on its type.
type Base struct {
	cfg config.BaseConfig

	StorageWh float64

	// Dispatch bookkeeping for a storage base.
	CallNum   int
	callShip1 bool
	callShip2 bool

	// supplyTimeCount delays the sale by one tick after goods arrive.
	supplyTimeCount int

	TotalReceivedWh float64
	TotalSupplyWh   float64

	// Costs in units of 100M JPY, filled by CostCalculate.
	TankTotalCost   float64
	BuildingCost    float64
	MaintenanceCost float64
	UnitPrice       float64
	Profit          float64
}

// New builds an empty base.
func New(cfg config.BaseConfig) *Base {
	return &Base{cfg: cfg}
}

// Position returns the base location.
func (b *Base) Position() geo.Point {
	return geo.Point{Lat: b.cfg.Lat, Lon: b.cfg.Lon}
}

// MaxStorageWh is the base's tank capacity.
func (b *Base) MaxStorageWh() float64 {
	return b.cfg.MaxStorageWh
}

// Headroom is how much more the base can absorb.
func (b *Base) Headroom() float64 {
	return b.cfg.MaxStorageWh - b.StorageWh
}

// StoragePercentage is the tank fill level in percent.
func (b *Base) StoragePercentage() float64 {
	return b.StorageWh / b.cfg.MaxStorageWh * 100
}

// receiveFromShip takes whatever the generation ship unloaded this tick.
// The ship announces the amount in SupplyElectWh; it is zeroed here so a
// docked ship is only counted once.
func (b *Base) receiveFromShip(tpg *ship.Ship) {
	b.StorageWh += tpg.SupplyElectWh
	b.TotalReceivedWh += tpg.SupplyElectWh
	if tpg.SupplyElectWh > 0 {
		tpg.SupplyElectWh = 0
	}
}

// loadShuttle transfers cargo into a docked shuttle, emptying the tank or
// filling the shuttle, whichever comes first.
func (b *Base) loadShuttle(s *support.Ship) {
	if b.StorageWh <= s.MaxStorageWh() {
		s.StorageWh += b.StorageWh
		b.TotalSupplyWh += b.StorageWh
		b.StorageWh = 0
	} else {
		s.StorageWh = s.MaxStorageWh()
		b.TotalSupplyWh += s.MaxStorageWh()
		b.StorageWh -= s.MaxStorageWh()
	}
	b.CallNum++
}

// dispatchShuttles calls the shuttles in strict priority order: ship 1
// whenever it is home or already under way on a call, ship 2 only
// otherwise. The call flag holds until the shuttle docks. A shuttle moves
// at most once per tick; a freshly called one takes its first leg here,
// one already under way was stepped by Operate.
func (b *Base) dispatchShuttles(s1, s2 *support.Ship, stepHours int) {
	pos := b.Position()
	switch {
	case (s1.ArrivedSupplyBase || b.callShip1) && s1.Enabled():
		if s1.ArrivedSupplyBase {
			s1.Step(pos, stepHours)
		}
		b.callShip1 = true
		if s1.ArrivedStorageBase {
			b.callShip1 = false
			b.loadShuttle(s1)
		}
	case (s2.ArrivedSupplyBase || b.callShip2) && s2.Enabled():
		if s2.ArrivedSupplyBase {
			s2.Step(pos, stepHours)
		}
		b.callShip2 = true
		if s2.ArrivedStorageBase {
			b.callShip2 = false
			b.loadShuttle(s2)
		}
	}
}

// receiveFromShuttles absorbs the cargo of any shuttle sitting at this
// base's position.
func (b *Base) receiveFromShuttles(s1, s2 *support.Ship) {
	pos := b.Position()
	if s1.Position() == pos && s1.StorageWh > 0 {
		b.StorageWh += s1.StorageWh
		b.TotalReceivedWh += s1.StorageWh
		s1.StorageWh = 0
	}
	if s2.Position() == pos && s2.StorageWh > 0 {
		b.StorageWh += s2.StorageWh
		b.TotalReceivedWh += s2.StorageWh
		s2.StorageWh = 0
	}
}

// sell hands everything in the tank to the consumer side.
func (b *Base) sell() {
	if b.StorageWh > 0 {
		b.TotalSupplyWh += b.StorageWh
		b.StorageWh = 0
	}
}

// sellDelayed sells one tick after goods arrive, modeling the handling
// time ashore.
func (b *Base) sellDelayed() {
	if b.StorageWh <= 0 {
		return
	}
	if b.supplyTimeCount >= 1 {
		b.sell()
		b.supplyTimeCount = 0
	} else {
		b.supplyTimeCount++
	}
}

// Operate runs one tick of the base. A storage base takes the generation
// ship's cargo and runs the shuttle traffic; a supply base takes
// shuttle cargo and sells it; a combined base takes straight from the
// generation ship and sells it.
func (b *Base) Operate(tpg *ship.Ship, s1, s2 *support.Ship, stepHours int) {
	switch b.cfg.Type {
	case config.BaseStorage:
		b.receiveFromShip(tpg)

		// Shuttles already out on a round trip keep moving even when no
		// new call goes out.
		pos := b.Position()
		if !s1.ArrivedSupplyBase {
			s1.Step(pos, stepHours)
		}
		if !s2.ArrivedSupplyBase {
			s2.Step(pos, stepHours)
		}

		judge := s1.MaxStorageWh() * b.cfg.CallPer / 100
		if b.StorageWh >= judge {
			b.dispatchShuttles(s1, s2, stepHours)
		}

	case config.BaseSupply:
		b.receiveFromShuttles(s1, s2)
		b.sellDelayed()

	case config.BaseCombined:
		b.receiveFromShip(tpg)
		b.sellDelayed()
	}
}

// Per-tank capacity, tons of carrier.
const tankCapacityT = 1e5

// CostCalculate prices the base, in units of 100M JPY: tanks sized to the
// full storage capacity, a fixed 50-oku-yen harbor extension, 3 % yearly
// upkeep, and for a selling base the revenue from everything supplied.
func (b *Base) CostCalculate(storageMethod int, totalSupplyWh float64) {
	switch storageMethod {
	case config.StorageElectric:
		nBattery := math.Ceil(b.cfg.MaxStorageWh / 1e6 / 240)
		b.TankTotalCost = 240e3 * 75 * nBattery * 160 / 1e8
	case config.StorageMCH:
		tons := b.cfg.MaxStorageWh / 1e9 * 379
		b.TankTotalCost = 1e9 * math.Ceil(tons/tankCapacityT) / 1e8
	case config.StorageMethane, config.StorageMethanol, config.StorageEGasoline:
		tons := hull.CarrierDWT(storageMethod, b.cfg.MaxStorageWh)
		tankCost := map[int]float64{
			config.StorageMethane:   6e9,
			config.StorageMethanol:  3e9,
			config.StorageEGasoline: 1e9,
		}[storageMethod]
		b.TankTotalCost = tankCost * math.Ceil(tons/tankCapacityT) / 1e8
	}

	const extensionCost = 50
	b.BuildingCost = b.TankTotalCost + extensionCost
	b.MaintenanceCost = b.BuildingCost * 0.03

	b.Profit = 0
	if b.cfg.Type == config.BaseSupply || b.cfg.Type == config.BaseCombined {
		b.Profit = supplyProfit(storageMethod, totalSupplyWh, &b.UnitPrice)
	}
}

// Liquid carrier densities, kg/L.
var carrierDensity = map[int]float64{
	config.StorageMethane:   0.425,
	config.StorageMethanol:  0.792,
	config.StorageEGasoline: 0.75,
}

// supplyProfit prices the delivered goods in units of 100M JPY:
// electricity at 25 JPY/kWh, MCH as hydrogen at 20 JPY/Nm3, the e-fuels at
// 300 JPY/L through their densities.
func supplyProfit(storageMethod int, totalSupplyWh float64, unitPrice *float64) float64 {
	switch storageMethod {
	case config.StorageElectric:
		*unitPrice = 25
		return totalSupplyWh / 1000 * 25 / 1e8
	case config.StorageMCH:
		// 1 GWh of MCH weighs 379 t and yields 679 Nm3 of hydrogen per ton.
		tons := totalSupplyWh / 1e9 * 379
		*unitPrice = 20
		return tons * 679 * 20 / 1e8
	case config.StorageMethane, config.StorageMethanol, config.StorageEGasoline:
		tons := hull.CarrierDWT(storageMethod, totalSupplyWh)
		liters := tons * 1000 / carrierDensity[storageMethod]
		*unitPrice = 300
		return liters * 300 / 1e8
	}
	return 0
}

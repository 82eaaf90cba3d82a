package ship

import (
	"math"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
	"github.com/mitsuyukiLab/tpg-ship-sim/hull"
)

// Cost breakdown for the generation ship. BuildingCost, CarrierCost and
// MaintenanceCost are in units of 100M JPY; the component figures feeding
// them are in JPY.
type Cost struct {
	WingSailCost float64
	TurbineCost  float64
	BatteryCost  float64
	HullCost     float64
	PlantCost    float64
	MotorCost    float64

	CarrierCost     float64 // 100M JPY
	BuildingCost    float64 // 100M JPY
	MaintenanceCost float64 // 100M JPY per year
}

// Plant cost per storage method, JPY. Electric storage needs no
// conversion plant aboard.
var plantCost = map[int]float64{
	config.StorageElectric:  0,
	config.StorageMCH:       5.0e9,
	config.StorageMethane:   7.5e9,
	config.StorageMethanol:  6.0e9,
	config.StorageEGasoline: 5.0e9,
}

// CostCalculate prices the ship as designed. Hull regressions follow the
// carrier form, sails and turbines follow linear fits, batteries come in
// 240 MWh units at 75 USD/kWh and 160 JPY/USD. Fuel-based carriers also
// book the CO2 feedstock for everything generated over the run.
func (s *Ship) CostCalculate() Cost {
	cfg := s.cfg
	d := s.Design
	var c Cost

	c.WingSailCost = (0.0004444*cfg.SailArea + 0.5556) * float64(d.SailNum) * 1e8
	c.TurbineCost = (0.82*cfg.GeneratorTurbineRadius - 3.9) * 1e8 * float64(cfg.GeneratorNum)

	nBattery := math.Ceil(cfg.ElectricPropulsionMaxStorageWh / 1e6 / 240)
	c.BatteryCost = 240e3 * 75 * nBattery * 160
	initialEPCost := 25 * (cfg.ElectricPropulsionMaxStorageWh / 1000)

	perBody := d.ShipDWT / float64(cfg.HullNum)
	deckCost := 500000 * d.HullLOA * d.HullB

	switch cfg.StorageMethod {
	case config.StorageElectric:
		c.HullCost = 0.00483*math.Pow(perBody, 0.878)*1e6*160*float64(cfg.HullNum) + deckCost
		nCargo := math.Ceil(cfg.MaxStorageWh / 1e6 / 240)
		c.CarrierCost = 240e3 * 75 * nCargo * 160 / 1e8
	case config.StorageMCH:
		c.HullCost = 0.212*math.Pow(perBody, 0.5065)*1e6*160*float64(cfg.HullNum) + deckCost
		// Toluene inventory: three holds' worth at 1500 USD/t.
		c.CarrierCost = 1500 * (cfg.MaxStorageWh / 1e9 * 379) * 3 * 160 / 1e8
	case config.StorageMethane:
		c.HullCost = 4.41*0.212*math.Pow(perBody, 0.5065)*1e6*160*float64(cfg.HullNum) + deckCost
		c.CarrierCost = s.co2FeedstockCost()
	default:
		c.HullCost = 0.212*math.Pow(perBody, 0.5065)*1e6*160*float64(cfg.HullNum) + deckCost
		c.CarrierCost = s.co2FeedstockCost()
	}

	c.PlantCost = plantCost[cfg.StorageMethod]
	c.MotorCost = 0.1 * c.HullCost

	c.BuildingCost = (c.HullCost + c.WingSailCost + c.TurbineCost +
		c.PlantCost + c.MotorCost + c.BatteryCost + initialEPCost) / 1e8
	c.MaintenanceCost = c.BuildingCost * 0.03
	return c
}

// co2FeedstockCost prices the CO2 needed to synthesize the initial hold
// plus everything converted during the run, at 200 USD/t, in 100M JPY.
func (s *Ship) co2FeedstockCost() float64 {
	co2Tons := hull.CO2FeedstockTons(s.cfg.StorageMethod,
		s.cfg.MaxStorageWh+s.SumGeneCarrierWh)
	return 200 * co2Tons * 160 / 1e8
}

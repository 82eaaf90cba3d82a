package sim

import (
	"log/slog"
	"math"
)

// maxSailLengthM caps the sail height allowance regardless of beam.
const maxSailLengthM = 180.0

// Objective is the techno-economic score of a finished run. Money is in
// units of 100M JPY.
type Objective struct {
	OperatingYears int

	TPGShipTotalCost     float64
	Support1TotalCost    float64
	Support2TotalCost    float64
	StorageBaseTotalCost float64
	SupplyBaseTotalCost  float64
	TotalCost            float64

	SailLengthPenalty   float64
	MinusStoragePenalty float64
	SupplyZeroPenalty   float64

	TotalProfit       float64
	TotalDepreciation float64
	TotalMaintenance  float64
	TotalOperation    float64
	PureProfitPerYear float64
	Income            float64

	// Sale price at which yearly operating profit breaks even, JPY per
	// the carrier's sale unit.
	UnitPrice            float64
	AppropriateUnitPrice float64
}

// Evaluate prices the whole fleet and reduces the run to the unit price
// the delivered energy would need to break even. Smaller is better.
func (s *Simulator) Evaluate() Objective {
	var o Objective
	o.OperatingYears = int(math.Ceil(
		float64(s.cfg.Derived.EndUnix-s.cfg.Derived.StartUnix) / 86400 / 365))
	years := float64(o.OperatingYears)

	method := s.cfg.TPGShip.StorageMethod

	shipCost := s.TPGShip.CostCalculate()
	o.TPGShipTotalCost = shipCost.BuildingCost + shipCost.CarrierCost +
		shipCost.MaintenanceCost*years

	s.Support1.CostCalculate()
	o.Support1TotalCost = s.Support1.BuildingCost +
		s.Support1.MaintenanceCost*years + s.Support1.TransportationCost
	s.Support2.CostCalculate()
	o.Support2TotalCost = s.Support2.BuildingCost +
		s.Support2.MaintenanceCost*years + s.Support2.TransportationCost

	s.StorageBase.CostCalculate(method, s.StorageBase.TotalSupplyWh)
	o.StorageBaseTotalCost = s.StorageBase.BuildingCost +
		s.StorageBase.MaintenanceCost*years
	s.SupplyBase.CostCalculate(method, s.SupplyBase.TotalSupplyWh)
	o.SupplyBaseTotalCost = s.SupplyBase.BuildingCost +
		s.SupplyBase.MaintenanceCost*years

	o.TotalCost = o.TPGShipTotalCost + o.Support1TotalCost + o.Support2TotalCost +
		o.StorageBaseTotalCost + o.SupplyBaseTotalCost

	// An oversized rig is priced against the beam it would need.
	allowable := s.TPGShip.Design.HullB * 1.3
	if allowable > maxSailLengthM {
		allowable = maxSailLengthM
	}
	if h := s.TPGShip.Design.SailHeight; h > allowable {
		o.SailLengthPenalty = 100 * (h - allowable)
	}

	o.MinusStoragePenalty = s.TPGShip.MinusStoragePenalty
	if s.SupplyBase.TotalSupplyWh == 0 {
		o.SupplyZeroPenalty = 500
	}

	o.TotalProfit = s.SupplyBase.Profit

	// Straight-line depreciation: hulls over 20 years, tanks over 20,
	// the rest of a base over 50.
	o.TotalDepreciation = shipCost.BuildingCost/20 +
		s.Support1.BuildingCost/20 + s.Support2.BuildingCost/20 +
		baseDepreciation(s.StorageBase.TankTotalCost, s.StorageBase.BuildingCost) +
		baseDepreciation(s.SupplyBase.TankTotalCost, s.SupplyBase.BuildingCost)

	o.TotalMaintenance = shipCost.MaintenanceCost +
		s.Support1.MaintenanceCost + s.Support2.MaintenanceCost +
		s.StorageBase.MaintenanceCost + s.SupplyBase.MaintenanceCost

	o.TotalOperation = shipCost.CarrierCost +
		s.Support1.TransportationCost + s.Support2.TransportationCost

	o.PureProfitPerYear = o.TotalProfit - o.TotalDepreciation -
		o.TotalMaintenance - o.TotalOperation

	totalPenalty := o.SailLengthPenalty + o.MinusStoragePenalty + o.SupplyZeroPenalty
	o.Income = o.PureProfitPerYear - totalPenalty

	o.UnitPrice = s.SupplyBase.UnitPrice
	if o.TotalProfit == 0 {
		o.AppropriateUnitPrice = (o.TotalProfit - o.Income) * o.UnitPrice
	} else {
		o.AppropriateUnitPrice = (o.TotalProfit - o.Income) / o.TotalProfit * o.UnitPrice
	}
	return o
}

// baseDepreciation writes a base off over 20 years for the tanks and 50
// for the rest.
func baseDepreciation(tankCost, buildingCost float64) float64 {
	return tankCost/20 + (buildingCost-tankCost)/50
}

// Log emits the objective breakdown through slog.
func (o Objective) Log() {
	slog.Info("objective",
		"operating_years", o.OperatingYears,
		"total_cost_100m_jpy", o.TotalCost,
		"total_profit_100m_jpy", o.TotalProfit,
		"pure_profit_per_year", o.PureProfitPerYear,
		"sail_length_penalty", o.SailLengthPenalty,
		"minus_storage_penalty", o.MinusStoragePenalty,
		"supply_zero_penalty", o.SupplyZeroPenalty,
		"income", o.Income,
		"appropriate_unit_price", o.AppropriateUnitPrice,
	)
}

// Package hull holds the naval-architecture relations shared by the
// generation ship and the support ships: carrier deadweight, principal
// dimension regressions and the max-speed power law.
package hull

import (
	"math"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
)

// Energy content constants for the chemical carriers, kJ per mol burned and
// g per mol.
const (
	methaneKJPerMol  = 802.0
	methaneGPerMol   = 16.04
	methanolKJPerMol = 726.2
	methanolGPerMol  = 32.04
	octaneKJPerMol   = 5500.0
	octaneGPerMol    = 114.23
)

// CarrierDWT returns the deadweight tonnage needed to carry storageWh of
// energy with the given storage method.
func CarrierDWT(method int, storageWh float64) float64 {
	switch method {
	case config.StorageElectric:
		// 1000 Wh/kg cells.
		return storageWh / 1000 / 1000
	case config.StorageMCH:
		// Hydrogen bound in methylcyclohexane.
		return storageWh / 5000 * 0.0898 / 47.4
	case config.StorageMethane:
		return molTons(storageWh, methaneKJPerMol, methaneGPerMol)
	case config.StorageMethanol:
		return molTons(storageWh, methanolKJPerMol, methanolGPerMol)
	case config.StorageEGasoline:
		return molTons(storageWh, octaneKJPerMol, octaneGPerMol)
	}
	return 0
}

// molTons converts an energy amount to carrier tons via mol count.
func molTons(storageWh, kjPerMol, gPerMol float64) float64 {
	mol := storageWh / ((kjPerMol / 3600) * 1000)
	return mol * gPerMol / 1e6
}

// CO2FeedstockTons returns the CO2 tonnage needed to synthesize storageWh of
// a carbon-based carrier (methods 3..5).
func CO2FeedstockTons(method int, storageWh float64) float64 {
	const co2GPerMol = 44.0
	switch method {
	case config.StorageMethane:
		mol := storageWh / ((methaneKJPerMol / 3600) * 1000)
		return mol * co2GPerMol / 1e6
	case config.StorageMethanol:
		mol := storageWh / ((methanolKJPerMol / 3600) * 1000)
		return mol * co2GPerMol / 1e6
	case config.StorageEGasoline:
		// Eight carbons per octane molecule.
		mol := storageWh / ((octaneKJPerMol / 3600) * 1000)
		return mol * 8 * co2GPerMol / 1e6
	}
	return 0
}

// ContainerLB returns length overall and beam for a container-form hull of
// the given per-body deadweight, from the published principal-dimension
// statistics.
func ContainerLB(dwt float64) (loa, b float64) {
	switch {
	case dwt < 35000:
		return 6.0564 * math.Pow(dwt, 0.3398), 1.4257 * math.Pow(dwt, 0.2883)
	case dwt < 45000:
		return 228.3, 31.8
	case dwt < 55000:
		return 268.8, 33.7
	case dwt < 65000:
		return 284.5, 35.5
	case dwt < 75000:
		return 291.0, 39.2
	case dwt < 85000:
		return 304.8, 42.0
	case dwt < 95000:
		return 310.9, 44.1
	case dwt < 105000:
		return 338.0, 45.3
	case dwt < 135000:
		loa = 343.1
		switch {
		case dwt < 115000:
			return loa, 47.3
		case dwt < 125000:
			return loa, 48.0
		default:
			return loa, 48.5
		}
	case dwt < 155000:
		loa = 367.5
		if dwt < 145000 {
			return loa, 48.5
		}
		return loa, 52.0
	case dwt < 175000:
		return 378.3, 52.0
	default:
		return 399.7, 59.4
	}
}

// TankerLB returns length overall and beam for a tanker-form hull.
func TankerLB(dwt float64) (loa, b float64) {
	switch {
	case dwt < 20000:
		return 5.4061 * math.Pow(dwt, 0.3500), 1.4070 * math.Pow(dwt, 0.2864)
	case dwt < 280000:
		loa = 10.8063 * math.Pow(dwt, 0.2713)
		switch {
		case dwt < 40000:
			return loa, 1.4070 * math.Pow(dwt, 0.2864)
		case dwt < 80000:
			return loa, 32.9
		case dwt < 120000:
			return loa, 43.5
		case dwt < 200000:
			return loa, 48.9
		default:
			return loa, 60.2
		}
	default:
		return 333.7, 60.2
	}
}

// LNGLB returns length overall and beam for an LNG-carrier hull. The source
// statistics are tabulated against gross tonnage; DWT converts at 0.7 GT.
func LNGLB(dwt float64) (loa, b float64) {
	gt := dwt / 0.7
	if gt < 150000 {
		return 6.1272 * math.Pow(gt, 0.3343), 1.1239 * math.Pow(gt, 0.3204)
	}
	return 345.2, 54.6
}

// DimensionsFor picks the hull-form regression for a storage method.
func DimensionsFor(method int, dwt float64) (loa, b float64) {
	switch method {
	case config.StorageElectric:
		return ContainerLB(dwt)
	case config.StorageMethane:
		return LNGLB(dwt)
	default:
		return TankerLB(dwt)
	}
}

// PowerCoefficient is the admiralty-style constant of the max-speed power
// law: 1.7 for bulker-like electric carriers, 2.2 for tanker forms.
func PowerCoefficient(method int) float64 {
	if method == config.StorageElectric {
		return 1.7
	}
	return 2.2
}

// MaxSpeedPower returns the power needed to push totalDWT tons split over
// bodies hulls at speedKt, scaled by the interference coefficient cf.
func MaxSpeedPower(method int, totalDWT float64, speedKt float64, bodies int, cf float64) float64 {
	k := PowerCoefficient(method)
	return k * math.Pow(totalDWT/float64(bodies), 2.0/3.0) * math.Pow(speedKt, 3) * float64(bodies) * cf
}

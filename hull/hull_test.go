package hull

import (
	"math"
	"testing"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
)

// ---------- Carrier deadweight ----------

func TestCarrierDWTElectric(t *testing.T) {
	// 1 GWh at 1000 Wh/kg is 1000 t.
	if got := CarrierDWT(config.StorageElectric, 1e9); math.Abs(got-1000) > 1e-6 {
		t.Errorf("electric DWT = %f, want 1000", got)
	}
}

func TestCarrierDWTMCH(t *testing.T) {
	// 1 GWh of hydrogen bound as MCH is ~379 t.
	got := CarrierDWT(config.StorageMCH, 1e9)
	if got < 375 || got > 383 {
		t.Errorf("MCH DWT per GWh = %f, want ~379", got)
	}
}

func TestCarrierDWTScalesLinearly(t *testing.T) {
	for method := config.StorageElectric; method <= config.StorageEGasoline; method++ {
		one := CarrierDWT(method, 1e9)
		ten := CarrierDWT(method, 1e10)
		if one <= 0 {
			t.Errorf("method %d: DWT = %f, want > 0", method, one)
		}
		if math.Abs(ten-10*one) > one*1e-9 {
			t.Errorf("method %d: DWT not linear in storage", method)
		}
	}
}

func TestCO2FeedstockOnlyForCarbonCarriers(t *testing.T) {
	if got := CO2FeedstockTons(config.StorageElectric, 1e9); got != 0 {
		t.Errorf("electric CO2 = %f, want 0", got)
	}
	if got := CO2FeedstockTons(config.StorageMCH, 1e9); got != 0 {
		t.Errorf("MCH CO2 = %f, want 0", got)
	}
	for _, method := range []int{config.StorageMethane, config.StorageMethanol, config.StorageEGasoline} {
		if got := CO2FeedstockTons(method, 1e9); got <= 0 {
			t.Errorf("method %d CO2 = %f, want > 0", method, got)
		}
	}
}

// ---------- Principal dimensions ----------

func TestDimensionRegressionsMonotoneSmallRange(t *testing.T) {
	// Within the power-law region, bigger ship means longer and wider.
	l1, b1 := TankerLB(5000)
	l2, b2 := TankerLB(15000)
	if l2 <= l1 || b2 <= b1 {
		t.Errorf("tanker dims not monotone: (%f,%f) vs (%f,%f)", l1, b1, l2, b2)
	}

	l1, b1 = ContainerLB(5000)
	l2, b2 = ContainerLB(30000)
	if l2 <= l1 || b2 <= b1 {
		t.Errorf("container dims not monotone: (%f,%f) vs (%f,%f)", l1, b1, l2, b2)
	}
}

func TestDimensionsForSelectsForm(t *testing.T) {
	dwt := 30000.0
	cl, cb := DimensionsFor(config.StorageElectric, dwt)
	tl, tb := DimensionsFor(config.StorageMCH, dwt)
	ll, lb := DimensionsFor(config.StorageMethane, dwt)

	wl, wb := ContainerLB(dwt)
	if cl != wl || cb != wb {
		t.Errorf("electric did not use container regression")
	}
	wl, wb = TankerLB(dwt)
	if tl != wl || tb != wb {
		t.Errorf("MCH did not use tanker regression")
	}
	wl, wb = LNGLB(dwt)
	if ll != wl || lb != wb {
		t.Errorf("methane did not use LNG regression")
	}
}

// ---------- Power law ----------

func TestMaxSpeedPowerCubeLaw(t *testing.T) {
	p10 := MaxSpeedPower(config.StorageMCH, 20000, 10, 1, 1)
	p20 := MaxSpeedPower(config.StorageMCH, 20000, 20, 1, 1)
	if math.Abs(p20/p10-8) > 1e-9 {
		t.Errorf("power ratio for doubled speed = %f, want 8", p20/p10)
	}
}

func TestMaxSpeedPowerCoefficient(t *testing.T) {
	pe := MaxSpeedPower(config.StorageElectric, 20000, 15, 1, 1)
	pt := MaxSpeedPower(config.StorageMCH, 20000, 15, 1, 1)
	if math.Abs(pt/pe-2.2/1.7) > 1e-9 {
		t.Errorf("tanker/bulker power ratio = %f, want %f", pt/pe, 2.2/1.7)
	}
}

func TestMaxSpeedPowerTwinHullSplit(t *testing.T) {
	mono := MaxSpeedPower(config.StorageMCH, 20000, 15, 1, 1)
	twin := MaxSpeedPower(config.StorageMCH, 20000, 15, 2, 1)
	// Splitting the displacement raises wetted area: twin hulls need more
	// power at equal total weight.
	if twin <= mono {
		t.Errorf("twin hull power %f not above monohull %f", twin, mono)
	}
}

package ship

import (
	"math"
	"testing"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
)

func testShipCfg() config.TPGShipConfig {
	return config.TPGShipConfig{
		InitialLat: 24.47, InitialLon: 153.98,
		StandbyLat: 24.47, StandbyLon: 153.98,
		HullNum:       2,
		StorageMethod: config.StorageMCH,
		MaxStorageWh:  50e9,

		ElectricPropulsionMaxStorageWh: 1.5e9,
		TrustEfficiency:                0.68,
		CarrierToElectEfficiency:       0.5,
		ElectToCarrierEfficiency:       0.8,

		GeneratorTurbineRadius:      10,
		GeneratorEfficiency:         0.45,
		GeneratorDragCoefficient:    0.4,
		GeneratorPillarChord:        3.2,
		GeneratorPillarMaxThickness: 0.96,
		GeneratorPillarWidth:        12,
		GeneratorNum:                16,

		SailArea: 880, SailSpace: 2.0, SailSteps: 5, SailNum: 40,

		ReturnSpeedKt: 12, MaxSpeedKt: 20,

		ForecastWeight:               22,
		TyphoonEffectiveRangeKm:      50,
		GoviaBaseJudgeStoragePer:     35,
		JudgeTimeTimes:               1.5,
		OperationalReservePercentage: 2,
	}
}

// ---------- hull and sail sizing ----------

func TestDesignSailNumCapped(t *testing.T) {
	cfg := testShipCfg()
	cfg.SailNum = 100000
	d := NewDesign(cfg)

	if d.SailNum >= 100000 {
		t.Fatalf("sail count not capped by deck area: %d", d.SailNum)
	}
	if d.SailNum <= 0 {
		t.Fatalf("deck-limited sail count should be positive, got %d", d.SailNum)
	}
}

func TestDesignRequestedSailNumKept(t *testing.T) {
	cfg := testShipCfg()
	cfg.SailNum = 5
	d := NewDesign(cfg)

	if d.SailNum != 5 {
		t.Fatalf("small requested sail count should survive, got %d", d.SailNum)
	}
}

func TestDesignSailPenaltyRange(t *testing.T) {
	for _, n := range []int{5, 20, 40, 100} {
		cfg := testShipCfg()
		cfg.SailNum = n
		d := NewDesign(cfg)
		if d.SailPenalty < 0.6 || d.SailPenalty > 1.0 {
			t.Errorf("sailNum=%d: penalty %.3f outside [0.6, 1.0]", n, d.SailPenalty)
		}
	}
}

func TestDesignCatamaranBeam(t *testing.T) {
	mono := testShipCfg()
	mono.HullNum = 1
	cat := testShipCfg()
	cat.HullNum = 2

	dm := NewDesign(mono)
	dc := NewDesign(cat)

	if dc.HullB <= dm.HullB {
		t.Fatalf("catamaran deck beam %.1f should exceed monohull beam %.1f",
			dc.HullB, dm.HullB)
	}
}

func TestDesignInterferenceCoefficient(t *testing.T) {
	mono := testShipCfg()
	mono.HullNum = 1
	if got := NewDesign(mono).InterferenceCoeff; got != 1.0 {
		t.Errorf("monohull interference = %.4f, want 1.0", got)
	}

	// With the deck at 3.5 beams the hull gap is 1.5 beams, so the
	// coefficient is 1 + 1/1.5 regardless of displacement.
	cat := testShipCfg()
	got := NewDesign(cat).InterferenceCoeff
	want := 1.0 + 1.0/1.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("catamaran interference = %.6f, want %.6f", got, want)
	}
}

// ---------- generating performance ----------

func TestDesignGeneratingSpeedBounds(t *testing.T) {
	d := NewDesign(testShipCfg())

	if d.GeneratingSpeedKt <= 0 {
		t.Fatalf("generating speed should be positive, got %.2f", d.GeneratingSpeedKt)
	}
	if d.GeneratingSpeedKt > limitShipSpeedKt {
		t.Fatalf("generating speed %.2f exceeds hull cap %v",
			d.GeneratingSpeedKt, limitShipSpeedKt)
	}
}

func TestDesignRatedOutputMatchesSpeed(t *testing.T) {
	cfg := testShipCfg()
	d := NewDesign(cfg)

	discArea := cfg.GeneratorTurbineRadius * cfg.GeneratorTurbineRadius * math.Pi
	want := float64(cfg.GeneratorNum) * 0.5 * seaDensity *
		math.Pow(d.GeneratingSpeedMps, 3) * discArea * cfg.GeneratorEfficiency

	if math.Abs(d.RatedOutputW-want)/want > 1e-12 {
		t.Errorf("rated output %.1f W, want %.1f W", d.RatedOutputW, want)
	}
}

func TestDesignMoreSailsMoreSpeed(t *testing.T) {
	few := testShipCfg()
	few.SailNum = 5
	many := testShipCfg()
	many.SailNum = 10

	df := NewDesign(few)
	dm := NewDesign(many)
	if dm.SailNum <= df.SailNum {
		t.Fatalf("deck cap collapsed the comparison: %d vs %d sails",
			df.SailNum, dm.SailNum)
	}
	if dm.GeneratingSpeedKt <= df.GeneratingSpeedKt {
		t.Errorf("%d sails (%.2f kt) should outrun %d sails (%.2f kt)",
			dm.SailNum, dm.GeneratingSpeedKt, df.SailNum, df.GeneratingSpeedKt)
	}
}

// ---------- cost ----------

func TestCostCalculatePositive(t *testing.T) {
	s := New(testShipCfg(), 24.47, 153.98)
	c := s.CostCalculate()

	if c.BuildingCost <= 0 {
		t.Fatalf("building cost should be positive, got %.2f", c.BuildingCost)
	}
	if c.CarrierCost <= 0 {
		t.Fatalf("carrier cost should be positive, got %.2f", c.CarrierCost)
	}
	if math.Abs(c.MaintenanceCost-c.BuildingCost*0.03) > 1e-9 {
		t.Errorf("maintenance %.4f is not 3%% of building %.4f",
			c.MaintenanceCost, c.BuildingCost)
	}
}

func TestCostMethaneHullPremium(t *testing.T) {
	mch := testShipCfg()
	lng := testShipCfg()
	lng.StorageMethod = config.StorageMethane

	cm := New(mch, 24.47, 153.98).CostCalculate()
	cl := New(lng, 24.47, 153.98).CostCalculate()

	if cl.HullCost <= cm.HullCost {
		t.Errorf("LNG hull (%.0f) should cost more than tanker hull (%.0f)",
			cl.HullCost, cm.HullCost)
	}
}

package base

import (
	"math"
	"testing"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
	"github.com/mitsuyukiLab/tpg-ship-sim/ship"
	"github.com/mitsuyukiLab/tpg-ship-sim/support"
)

const stepHours = 6

func storageBaseCfg() config.BaseConfig {
	return config.BaseConfig{
		Type: config.BaseStorage,
		Lat:  24.0, Lon: 153.0,
		MaxStorageWh: 1e12,
		CallPer:      50,
	}
}

func supplyBaseCfg() config.BaseConfig {
	return config.BaseConfig{
		Type: config.BaseSupply,
		Lat:  24.0, Lon: 152.0,
		MaxStorageWh: 1e12,
	}
}

func testShuttleCfg() config.SupportShipConfig {
	return config.SupportShipConfig{
		MaxStorageWh:         1e10,
		SpeedKt:              20,
		EPMaxStorageWh:       1e9,
		ElectTrustEfficiency: 0.68,
	}
}

func testTPGCfg() config.TPGShipConfig {
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

func newShuttles() (*support.Ship, *support.Ship) {
	sp := supplyBaseCfg()
	s1 := support.New(testShuttleCfg(), config.StorageMCH, sp.Lat, sp.Lon)
	s2 := support.New(testShuttleCfg(), config.StorageMCH, sp.Lat, sp.Lon)
	return s1, s2
}

// ---------- storage base ----------

func TestStorageBaseReceivesShipCargoOnce(t *testing.T) {
	b := New(storageBaseCfg())
	tpg := ship.New(testTPGCfg(), 24.0, 153.0)
	tpg.SupplyElectWh = 5e9
	s1, s2 := newShuttles()

	b.Operate(tpg, s1, s2, stepHours)

	if b.StorageWh != 5e9 {
		t.Fatalf("base storage %g, want 5e9", b.StorageWh)
	}
	if tpg.SupplyElectWh != 0 {
		t.Fatalf("announced cargo should be cleared, got %g", tpg.SupplyElectWh)
	}

	b.Operate(tpg, s1, s2, stepHours)
	if b.TotalReceivedWh != 5e9 {
		t.Errorf("docked ship counted twice: received %g", b.TotalReceivedWh)
	}
}

func TestStorageBaseHoldsShuttlesBelowThreshold(t *testing.T) {
	b := New(storageBaseCfg())
	tpg := ship.New(testTPGCfg(), 24.0, 153.0)
	s1, s2 := newShuttles()

	// Threshold is half of shuttle 1's capacity.
	b.StorageWh = 4e9

	b.Operate(tpg, s1, s2, stepHours)

	if !s1.ArrivedSupplyBase || !s2.ArrivedSupplyBase {
		t.Fatal("no shuttle should be called below the dispatch threshold")
	}
}

func TestStorageBaseDispatchPriority(t *testing.T) {
	b := New(storageBaseCfg())
	tpg := ship.New(testTPGCfg(), 24.0, 153.0)
	s1, s2 := newShuttles()

	b.StorageWh = 8e9

	// First tick calls shuttle 1 out; the second docks and loads it.
	b.Operate(tpg, s1, s2, stepHours)
	b.Operate(tpg, s1, s2, stepHours)

	if !s1.ArrivedStorageBase {
		t.Fatal("shuttle 1 should be docked and loaded")
	}
	if s1.StorageWh != 8e9 {
		t.Errorf("shuttle 1 cargo %g, want the whole 8e9", s1.StorageWh)
	}
	if b.StorageWh != 0 {
		t.Errorf("tank should be empty after loading, got %g", b.StorageWh)
	}
	if !s2.ArrivedSupplyBase || s2.StorageWh != 0 {
		t.Errorf("shuttle 2 should never be called while shuttle 1 serves")
	}
	if b.CallNum != 1 {
		t.Errorf("call count %d, want 1", b.CallNum)
	}
}

func TestStorageBaseLoadFillsShuttleFirst(t *testing.T) {
	b := New(storageBaseCfg())
	tpg := ship.New(testTPGCfg(), 24.0, 153.0)
	s1, s2 := newShuttles()

	// More than shuttle 1 can lift.
	b.StorageWh = 1.5e10

	b.Operate(tpg, s1, s2, stepHours)
	b.Operate(tpg, s1, s2, stepHours)

	if s1.StorageWh != s1.MaxStorageWh() {
		t.Errorf("shuttle cargo %g, want full %g", s1.StorageWh, s1.MaxStorageWh())
	}
	if b.StorageWh != 5e9 {
		t.Errorf("tank remainder %g, want 5e9", b.StorageWh)
	}
}

// ---------- supply base ----------

func TestSupplyBaseSellsOneTickAfterArrival(t *testing.T) {
	b := New(supplyBaseCfg())
	tpg := ship.New(testTPGCfg(), 24.0, 153.0)
	s1, s2 := newShuttles()

	// Shuttle 1 sits at home loaded.
	s1.StorageWh = 5e9

	b.Operate(tpg, s1, s2, stepHours)
	if b.StorageWh != 5e9 {
		t.Fatalf("cargo not absorbed: base storage %g", b.StorageWh)
	}
	if s1.StorageWh != 0 {
		t.Fatalf("shuttle should be emptied, got %g", s1.StorageWh)
	}
	if b.TotalSupplyWh != 0 {
		t.Fatal("sale should wait one tick for handling")
	}

	b.Operate(tpg, s1, s2, stepHours)
	if b.TotalSupplyWh != 5e9 {
		t.Errorf("total supply %g, want 5e9", b.TotalSupplyWh)
	}
	if b.StorageWh != 0 {
		t.Errorf("tank should be empty after the sale, got %g", b.StorageWh)
	}
}

func TestCombinedBaseSellsShipCargo(t *testing.T) {
	cfg := storageBaseCfg()
	cfg.Type = config.BaseCombined
	b := New(cfg)
	tpg := ship.New(testTPGCfg(), 24.0, 153.0)
	tpg.SupplyElectWh = 5e9
	s1, s2 := newShuttles()

	b.Operate(tpg, s1, s2, stepHours)
	b.Operate(tpg, s1, s2, stepHours)

	if b.TotalSupplyWh != 5e9 {
		t.Errorf("total supply %g, want 5e9", b.TotalSupplyWh)
	}
}

// ---------- end to end ----------

func TestShuttleChainDeliversToSupplyBase(t *testing.T) {
	st := New(storageBaseCfg())
	sp := New(supplyBaseCfg())
	tpg := ship.New(testTPGCfg(), 24.0, 153.0)
	s1, s2 := newShuttles()

	tpg.SupplyElectWh = 8e9

	for i := 0; i < 6; i++ {
		st.Operate(tpg, s1, s2, stepHours)
		sp.Operate(tpg, s1, s2, stepHours)
	}

	if sp.TotalSupplyWh != 8e9 {
		t.Fatalf("supply base sold %g, want the full 8e9", sp.TotalSupplyWh)
	}
	// Nothing stuck anywhere.
	if st.StorageWh != 0 || sp.StorageWh != 0 || s1.StorageWh != 0 {
		t.Errorf("cargo left behind: storage base %g, supply base %g, shuttle %g",
			st.StorageWh, sp.StorageWh, s1.StorageWh)
	}
}

// ---------- costs ----------

func TestBaseCostCalculateMCH(t *testing.T) {
	b := New(supplyBaseCfg())
	b.CostCalculate(config.StorageMCH, 1e12)

	// 1e12 Wh of MCH weighs 379,000 t; four 100,000 t tanks at 10 oku each.
	if got, want := b.TankTotalCost, 40.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("tank cost %g, want %g", got, want)
	}
	if got, want := b.BuildingCost, 90.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("building cost %g, want %g", got, want)
	}
	if b.UnitPrice != 20 {
		t.Errorf("unit price %g, want 20 JPY/Nm3", b.UnitPrice)
	}
	if b.Profit <= 0 {
		t.Errorf("supply base with sales should book a profit, got %g", b.Profit)
	}
}

func TestStorageBaseBooksNoProfit(t *testing.T) {
	b := New(storageBaseCfg())
	b.CostCalculate(config.StorageMCH, 1e12)

	if b.Profit != 0 {
		t.Errorf("storage base should not sell, profit %g", b.Profit)
	}
}

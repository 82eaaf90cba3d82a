package sim

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
)

// ---------- fixtures ----------

// July 1st 2023 00:00 UTC.
const simStart = 1688169600

// writeTyphoonCSV lays one typhoon track drifting north over open water,
// alive July 2nd through July 5th on the 6 h grid.
func writeTyphoonCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "typhoon.csv")

	body := "unixtime,TYPHOON NUMBER,LAT,LON\n"
	genesis := int64(simStart + 86400)
	for i := 0; i <= 12; i++ {
		body += fmt.Sprintf("%d,2301,%.2f,%.2f\n",
			genesis+int64(i)*21600, 18.0+0.5*float64(i), 141.0+0.3*float64(i))
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeWindCSV writes a coarse steady-breeze grid for one month.
func writeWindCSV(t *testing.T, dir string, year, month int) {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("era5_test_%d_%d.csv", year, month))

	body := "LAT,LON,U10_E+_W-[m/s],V10_N+_S-[m/s]\n"
	for lat := 10; lat <= 40; lat += 10 {
		for lon := 130; lon <= 160; lon += 10 {
			body += fmt.Sprintf("%d,%d,8.0,4.0\n", lat, lon)
		}
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	typhoonPath := writeTyphoonCSV(t, dir)
	writeWindCSV(t, dir, 2023, 7)

	override := fmt.Sprintf(`simulation:
  start_time: "2023-07-01 00:00:00"
  end_time: "2023-07-08 00:00:00"
  typhoon_data_path: %q
  wind_data_dir: %q
  wind_file_pattern: "era5_test_%%d_%%d.csv"
output:
  dir: ""
`, typhoonPath, dir)

	overridePath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(overridePath, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(overridePath)
	if err != nil {
		t.Fatalf("loading test config: %v", err)
	}
	return cfg
}

// ---------- driver ----------

func TestSimulatorRunCompletes(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("building simulator: %v", err)
	}

	if err := s.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	sum := s.Summary()
	if sum.Ticks != cfg.Derived.RecordCount {
		t.Errorf("recorded %d ticks, want %d", sum.Ticks, cfg.Derived.RecordCount)
	}
	if s.TPGShip.SumLossWh < 0 || s.TPGShip.SumGeneratedWh < 0 {
		t.Errorf("cumulative energy went negative: gen %g, loss %g",
			s.TPGShip.SumGeneratedWh, s.TPGShip.SumLossWh)
	}
}

func TestSimulatorChasesTheTyphoon(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}

	// A typhoon lives four days inside a seven-day window next to the
	// ship's launch point; the ship must at least leave standby.
	sum := s.Summary()
	if sum.ChasingFraction == 0 && sum.GeneratingFraction == 0 {
		t.Error("ship never chased or generated with a typhoon in range")
	}
}

func TestSimulatorMissingWindData(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulation.WindDataDir = filepath.Join(t.TempDir(), "nope")

	s, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err == nil {
		t.Fatal("expected an error for missing wind data")
	}
}

// ---------- objective ----------

func TestEvaluateProducesFiniteObjective(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}

	obj := s.Evaluate()

	if obj.OperatingYears != 1 {
		t.Errorf("operating years %d, want 1 for a week-long run", obj.OperatingYears)
	}
	if obj.TotalCost <= 0 {
		t.Errorf("total cost %g, want positive", obj.TotalCost)
	}
	if math.IsNaN(obj.AppropriateUnitPrice) || math.IsInf(obj.AppropriateUnitPrice, 0) {
		t.Errorf("unit price is not finite: %g", obj.AppropriateUnitPrice)
	}
	if obj.UnitPrice != 20 {
		t.Errorf("unit price %g, want 20 JPY/Nm3 for MCH", obj.UnitPrice)
	}
}

func TestEvaluateSupplyZeroPenalty(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}

	obj := s.Evaluate()
	if s.SupplyBase.TotalSupplyWh == 0 && obj.SupplyZeroPenalty != 500 {
		t.Errorf("no deliveries should cost the 500 penalty, got %g", obj.SupplyZeroPenalty)
	}
	if s.SupplyBase.TotalSupplyWh > 0 && obj.SupplyZeroPenalty != 0 {
		t.Errorf("deliveries happened but penalty is %g", obj.SupplyZeroPenalty)
	}
}
